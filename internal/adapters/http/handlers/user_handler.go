package handlers

import (
	"context"

	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/pkg/pagination"
	"user-admission/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserLister pages through admitted users
type UserLister interface {
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
}

// UserHandler handles admitted user endpoints
type UserHandler struct {
	users UserLister
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserLister) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles listing admitted users (Operator only)
// @Summary List admitted users
// @Description Get a paginated list of admitted users, newest first
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.users.List(c.UserContext(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	items := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, u.ToResponse())
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(items, params, total))
}
