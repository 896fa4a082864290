package handlers

import (
	"context"
	"errors"
	"time"

	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/core/domain"
	"user-admission/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Admitter runs admission attempts
type Admitter interface {
	Admit(ctx context.Context, req domain.RegistrationRequest) (domain.Decision, error)
}

// RegistrationHandler handles the public registration endpoint
type RegistrationHandler struct {
	admitter Admitter
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(admitter Admitter) *RegistrationHandler {
	return &RegistrationHandler{admitter: admitter}
}

// RegisterRequest is the registration body
type RegisterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	ClientID    int    `json:"client_id"`
}

// AdmittedUserResponse DTO
type AdmittedUserResponse struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	DateOfBirth    string `json:"date_of_birth"`
	ClientID       int    `json:"client_id"`
	ClientType     string `json:"client_type"`
	HasCreditLimit bool   `json:"has_credit_limit"`
	CreditLimit    int    `json:"credit_limit"`
}

// RejectionResponse DTO
type RejectionResponse struct {
	Reason string `json:"reason"`
}

// Register handles a registration attempt
// @Summary Register a user
// @Description Validates the applicant, checks age and credit limit, and stores the user
// @Tags Registrations
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Applicant"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /registrations [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var body RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dob, err := time.Parse(models.DateLayout, body.DateOfBirth)
	if err != nil {
		return response.BadRequest(c, "date_of_birth must be YYYY-MM-DD")
	}

	decision, err := h.admitter.Admit(c.UserContext(), domain.RegistrationRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Email:       body.Email,
		DateOfBirth: dob,
		ClientID:    body.ClientID,
	})
	if err != nil {
		return admissionError(c, err)
	}

	if !decision.Admitted {
		return response.UnprocessableEntity(c, "Registration rejected", RejectionResponse{
			Reason: string(decision.Reason),
		})
	}

	return response.Created(c, "User registered successfully", toAdmittedUserResponse(decision.User))
}

func admissionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrClientCreditUnavailable):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidClientType):
		return response.Conflict(c, err.Error())
	default:
		return response.InternalServerError(c, "Failed to process registration")
	}
}

func toAdmittedUserResponse(u *domain.CandidateUser) *AdmittedUserResponse {
	return &AdmittedUserResponse{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		DateOfBirth:    u.DateOfBirth.Format(models.DateLayout),
		ClientID:       u.Client.ID,
		ClientType:     string(u.Client.Type),
		HasCreditLimit: u.HasCreditLimit,
		CreditLimit:    u.CreditLimit,
	}
}
