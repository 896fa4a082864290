package handlers

import (
	"context"

	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClientLister lists the client directory
type ClientLister interface {
	List(ctx context.Context) ([]*models.Client, error)
}

// ClientHandler handles client directory endpoints
type ClientHandler struct {
	clients ClientLister
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients ClientLister) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// ListClients handles listing clients (Operator only)
// @Summary List clients
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.clients.List(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to list clients")
	}
	return response.Success(c, "Clients retrieved successfully", clients)
}
