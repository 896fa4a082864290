package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck is a named dependency probe
type HealthCheck func() error

// HealthHandler handles health check endpoints
type HealthHandler struct {
	mode   string
	checks map[string]HealthCheck
}

// NewHealthHandler creates a new health handler. Every probe in checks is
// reported under its key
func NewHealthHandler(mode string, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{mode: mode, checks: checks}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "User admission API v1.0 is running",
		"mode":    h.mode,
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API, database and cache health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	checks := fiber.Map{"api": "healthy"}
	for _, name := range names {
		if err := h.checks[name](); err != nil {
			checks[name] = "unhealthy"
			status = "degraded"
			continue
		}
		checks[name] = "healthy"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

// APIInfo handles API v1 info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "User admission API v1.0",
		"version": "1.0.0",
	})
}
