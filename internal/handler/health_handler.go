package handler

import (
	"context"
	"time"

	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB. Wrap other checks in PingFunc.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain ping function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a HealthHandler. cache may be nil when redis is not configured.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Liveness and dependency status
// @Description Always 200 while the process serves requests
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{OK: true, Database: "up", Cache: "disabled"}
	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Warn("Database health check failed", zap.Error(err))
		resp.Database = "down"
	}
	if h.cache != nil {
		resp.Cache = "up"
		if err := h.cache.PingContext(ctx); err != nil {
			logger.Get().Warn("Cache health check failed", zap.Error(err))
			resp.Cache = "down"
		}
	}
	return c.JSON(resp)
}
