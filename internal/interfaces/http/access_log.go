package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/workermill-examples/shipapi/pkg/logger"
)

// AccessLog registra cada petición con método, ruta, status, duración y request_id.
// Debe montarse después del middleware requestid.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		evt := log.Info()
		if status >= 500 {
			evt = log.Error()
		}
		evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Str("request_id", RequestID(c)).
			Msg("request")
		return err
	}
}

// RequestID devuelve el id asignado por el middleware requestid.
func RequestID(c *fiber.Ctx) string {
	v := c.Locals(requestid.ConfigDefault.ContextKey)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
