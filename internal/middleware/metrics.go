package middleware

import (
	"errors"
	"time"

	"lingo-quiz/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency by route pattern. Register it outside
// RequestLogger so the status reflects the error handler.
func Metrics(m *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		endpoint := c.Route().Path
		if endpoint == "" || (endpoint == "/" && c.Path() != "/") {
			endpoint = "unmatched"
		}
		m.ObserveRequest(c.Method(), endpoint, status, time.Since(start))
		return err
	}
}
