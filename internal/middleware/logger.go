package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger writes one structured line per request.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := responseStatus(c, err)
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", GetRequestID(c)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("client error", fields...)
		default:
			logger.Info("request completed", fields...)
		}

		return err
	}
}

// responseStatus resolves the status the client will see. A handler error
// has not reached the app error handler yet, so its code wins.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
