package routes

import (
	"time"

	"user-admission/internal/adapters/cache"
	"user-admission/internal/adapters/http/handlers"
	"user-admission/internal/adapters/http/middleware"
	"user-admission/internal/adapters/persistence/repositories"
	"user-admission/internal/config"
	"user-admission/internal/core/services"
	"user-admission/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the shared resources routes are built from
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client // nil disables the credit cache
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Now      func() time.Time // nil means time.Now
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) {
	cfg := deps.Config

	// Initialize repositories
	clientRepo := repositories.NewClientRepository(deps.DB)
	creditRepo := repositories.NewCreditRecordRepository(deps.DB)
	userRepo := repositories.NewUserRepository(deps.DB)

	// Credit scores are read through redis when it is configured
	var creditScores services.CreditScoreProvider = creditRepo
	var invalidator handlers.CreditInvalidator
	checks := map[string]handlers.HealthCheck{
		"database": config.DatabaseHealthCheck(deps.DB),
	}
	if deps.Redis != nil {
		creditCache := cache.NewCreditScoreCache(creditRepo, deps.Redis, cfg.Redis.CreditTTL, deps.Logger)
		creditScores = creditCache
		invalidator = creditCache
		checks["redis"] = config.RedisHealthCheck(deps.Redis)
	}

	// Initialize services
	opts := []services.Option{
		services.WithPolicy(services.Policy{
			MinimumAge:         cfg.Policy.MinimumAge,
			MinimumCreditLimit: cfg.Policy.MinimumCreditLimit,
		}),
		services.WithCounter(deps.Metrics),
		services.WithLogger(deps.Logger),
	}
	if deps.Now != nil {
		opts = append(opts, services.WithClock(deps.Now))
	}
	registrationService := services.NewRegistrationService(clientRepo, creditScores, userRepo, opts...)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, checks)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	userHandler := handlers.NewUserHandler(userRepo)
	clientHandler := handlers.NewClientHandler(clientRepo)
	creditRecordHandler := handlers.NewCreditRecordHandler(creditRepo, invalidator, deps.Logger)

	// ============================================================
	// Public Routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	api.Post("/registrations",
		middleware.RegistrationRateLimiter(),
		middleware.NoStore(),
		registrationHandler.Register,
	)

	// ============================================================
	// Operator Routes
	// ============================================================
	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret)
	operatorOnly := middleware.OperatorOnly()

	api.Get("/users", authRequired, operatorOnly, userHandler.ListUsers)
	api.Get("/clients", authRequired, operatorOnly, middleware.CacheControl(time.Minute), clientHandler.ListClients)
	api.Put("/credit-records", authRequired, operatorOnly, creditRecordHandler.UpsertCreditRecord)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
			"path":    c.Path(),
		})
	})
}
