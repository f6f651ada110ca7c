package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PingFunc checks a backing service and returns an error when it is unavailable.
type PingFunc func(ctx context.Context) error

// HealthHandler reports whether the service and its database are up.
type HealthHandler struct {
	pingDB PingFunc
}

func NewHealthHandler(pingDB PingFunc) *HealthHandler {
	return &HealthHandler{pingDB: pingDB}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 and reports the database state in the body.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	database := "up"
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.pingDB(ctx); err != nil {
		database = "down"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
