package handlers

import (
	"context"
	"time"

	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CreditRecordWriter stores credit records
type CreditRecordWriter interface {
	Upsert(ctx context.Context, record *models.CreditRecord) error
}

// CreditInvalidator drops a cached credit limit
type CreditInvalidator interface {
	Invalidate(ctx context.Context, lastName string, dateOfBirth time.Time) error
}

// CreditRecordHandler handles back-office credit record maintenance
type CreditRecordHandler struct {
	records CreditRecordWriter
	cache   CreditInvalidator
	log     *zap.Logger
}

// NewCreditRecordHandler creates a new credit record handler. cache may be nil
func NewCreditRecordHandler(records CreditRecordWriter, cache CreditInvalidator, log *zap.Logger) *CreditRecordHandler {
	return &CreditRecordHandler{records: records, cache: cache, log: log}
}

// UpsertCreditRecordRequest is the credit record body
type UpsertCreditRecordRequest struct {
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	CreditLimit int    `json:"credit_limit"`
}

// UpsertCreditRecord creates or replaces a credit record (Operator only)
// @Summary Upsert credit record
// @Tags Credit Records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertCreditRecordRequest true "Credit record"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /credit-records [put]
func (h *CreditRecordHandler) UpsertCreditRecord(c *fiber.Ctx) error {
	var body UpsertCreditRecordRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if body.LastName == "" {
		return response.BadRequest(c, "last_name is required")
	}
	if body.CreditLimit < 0 {
		return response.BadRequest(c, "credit_limit must not be negative")
	}

	dob, err := time.Parse(models.DateLayout, body.DateOfBirth)
	if err != nil {
		return response.BadRequest(c, "date_of_birth must be YYYY-MM-DD")
	}

	record := &models.CreditRecord{
		LastName:    body.LastName,
		DateOfBirth: dob,
		CreditLimit: body.CreditLimit,
	}
	if err := h.records.Upsert(c.UserContext(), record); err != nil {
		return response.InternalServerError(c, "Failed to save credit record")
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(c.UserContext(), body.LastName, dob); err != nil {
			h.log.Warn("credit cache invalidation failed",
				zap.String("last_name", body.LastName),
				zap.Error(err),
			)
		}
	}

	return response.Success(c, "Credit record saved", record)
}
