package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	// Longer inbound ids are replaced so they cannot bloat log lines.
	requestIDMaxLen = 64
)

func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RequestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Locals(requestIDKey, rid)
		c.Set(RequestIDHeader, rid)

		return c.Next()
	}
}

func GetRequestID(c *fiber.Ctx) string {
	rid, _ := c.Locals(requestIDKey).(string)
	return rid
}
