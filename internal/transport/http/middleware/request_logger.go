// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs HTTP requests with method, path, status, duration and
// the authenticated user when there is one. Server errors log at error level.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)

		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}
		status := c.Response().StatusCode()
		kv := []interface{}{
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", status,
			"duration_ms", float64(dur.Microseconds()) / 1000.0,
			"request_id", reqID,
		}
		if id, ok := IdentityFrom(c); ok {
			kv = append(kv, "user_id", id.UserID)
		}

		if status >= fiber.StatusInternalServerError {
			log.Errorw("http", kv...)
		} else {
			log.Infow("http", kv...)
		}
		return err
	}
}
