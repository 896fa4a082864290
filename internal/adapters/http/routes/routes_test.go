package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user-admission/internal/config"
	"user-admission/internal/pkg/jwt"
	"user-admission/internal/pkg/metrics"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "routes-secret"

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

type testServer struct {
	app     *fiber.App
	mock    sqlmock.Sqlmock
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	app := fiber.New()
	Setup(app, Dependencies{
		Config: &config.Config{
			AppMode: "dev",
			JWT:     config.JWTConfig{Secret: testSecret, AccessTTL: time.Hour},
			Policy:  config.PolicyConfig{MinimumAge: 21, MinimumCreditLimit: 500},
		},
		DB:       db,
		Logger:   zap.NewNop(),
		Metrics:  m,
		Gatherer: reg,
		Now:      func() time.Time { return fixedNow },
	})

	return &testServer{app: app, mock: mock, metrics: m}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	return resp
}

var (
	clientColumns = []string{"id", "name", "type", "created_at", "updated_at"}
	creditColumns = []string{"id", "last_name", "date_of_birth", "credit_limit", "updated_at"}
)

func TestRegistration_AdmitsNormalClientWithEnoughCredit(t *testing.T) {
	s := newTestServer(t)
	dob := time.Date(1990, time.March, 12, 0, 0, 0, 0, time.UTC)

	s.mock.ExpectQuery("SELECT \\* FROM .clients.").
		WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(1, "Kowalski", "NormalClient", fixedNow, fixedNow))
	s.mock.ExpectQuery("SELECT \\* FROM .credit_records.").
		WillReturnRows(sqlmock.NewRows(creditColumns).AddRow(1, "Doe", dob, 10000, fixedNow))
	s.mock.ExpectExec("INSERT INTO .users.").
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp := s.do(t, fiber.MethodPost, "/api/v1/registrations",
		`{"first_name":"John","last_name":"Doe","email":"john.doe@gmail.com","date_of_birth":"1990-03-12","client_id":1}`, "")

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))
	assert.NoError(t, s.mock.ExpectationsWereMet())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Admissions.WithLabelValues("admitted")))
}

func TestRegistration_RejectsLowCredit(t *testing.T) {
	s := newTestServer(t)
	dob := time.Date(1985, time.July, 1, 0, 0, 0, 0, time.UTC)

	s.mock.ExpectQuery("SELECT \\* FROM .clients.").
		WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(1, "Kowalski", "NormalClient", fixedNow, fixedNow))
	s.mock.ExpectQuery("SELECT \\* FROM .credit_records.").
		WillReturnRows(sqlmock.NewRows(creditColumns).AddRow(2, "Kowalski", dob, 300, fixedNow))

	resp := s.do(t, fiber.MethodPost, "/api/v1/registrations",
		`{"first_name":"Jan","last_name":"Kowalski","email":"jan@kowalski.pl","date_of_birth":"1985-07-01","client_id":1}`, "")

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.NoError(t, s.mock.ExpectationsWereMet())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Admissions.WithLabelValues("insufficient_credit_limit")))
}

func TestRegistration_UnknownClient(t *testing.T) {
	s := newTestServer(t)

	s.mock.ExpectQuery("SELECT \\* FROM .clients.").
		WillReturnRows(sqlmock.NewRows(clientColumns))

	resp := s.do(t, fiber.MethodPost, "/api/v1/registrations",
		`{"first_name":"John","last_name":"Doe","email":"john.doe@gmail.com","date_of_birth":"1990-03-12","client_id":42}`, "")

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "user with id 42 does not exist in database")
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Admissions.WithLabelValues("error")))
}

func TestRegistration_TooYoungNeedsNoLookup(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, fiber.MethodPost, "/api/v1/registrations",
		`{"first_name":"Tim","last_name":"Young","email":"tim@young.io","date_of_birth":"2010-01-01","client_id":1}`, "")

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestOperatorRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/users", "/api/v1/clients"} {
		resp := s.do(t, fiber.MethodGet, path, "", "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := s.do(t, fiber.MethodPut, "/api/v1/credit-records", `{}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOperatorListsClients(t *testing.T) {
	s := newTestServer(t)
	token, err := jwt.GenerateAccessToken("ops", jwt.RoleOperator, testSecret, time.Hour)
	require.NoError(t, err)

	s.mock.ExpectQuery("SELECT \\* FROM .clients.").
		WillReturnRows(sqlmock.NewRows(clientColumns).
			AddRow(1, "Kowalski", "NormalClient", fixedNow, fixedNow).
			AddRow(3, "Smith", "VeryImportantClient", fixedNow, fixedNow))

	resp := s.do(t, fiber.MethodGet, "/api/v1/clients", "", token)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "private, max-age=60", resp.Header.Get(fiber.HeaderCacheControl))
	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.metrics.ObserveAdmission("too_young")

	resp := s.do(t, fiber.MethodGet, "/metrics", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `user_admission_attempts_total{outcome="too_young"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, fiber.MethodGet, "/nope", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
