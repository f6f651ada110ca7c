package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

// RequestLogger is a Fiber middleware that writes one structured line per request.
// Errors from the chain are rendered by the app's ErrorHandler first so that the
// logged status is the one sent to the client.
func RequestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()

		var e *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			e = logger.Error()
		case status >= fiber.StatusBadRequest:
			e = logger.Warn()
		default:
			e = logger.Info()
		}

		if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
			e = e.Str("request_id", id)
		}

		e.
			Dur("latency", time.Since(start)).
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Msg("API")

		return nil
	}
}
