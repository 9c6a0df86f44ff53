package handler

import (
	"context"
	"log"
	"time"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     pinger
	logger *log.Logger
}

func NewHealthHandler(db pinger, logger *log.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports whether the server can reach the database.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			if h.logger != nil {
				h.logger.Printf("[Health] database ping failed: %v", err)
			}
			return internalAppError(err)
		}
	}
	return response.Success(c, fiber.StatusOK, "Backend connected successfully", map[string]any{"database": "connected"})
}
