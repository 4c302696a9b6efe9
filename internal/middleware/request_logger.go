package middleware

import (
	"time"

	"lingo-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request once the handler chain and error handler have run.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
			zap.String("request_id", RequestIDFrom(c)),
		}
		if userID := UserID(c); userID != "" {
			fields = append(fields, zap.String("userID", userID))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Get().Error("Request completed", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Get().Warn("Request completed", fields...)
		default:
			logger.Get().Info("Request completed", fields...)
		}
		return nil
	}
}
