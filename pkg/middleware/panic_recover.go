package middleware

import (
	"runtime/debug"

	"github.com/NeuralTrust/GateFilters/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

// Middleware answers 500 when a filter or the forwarder panics. Whatever the
// failed handler already wrote to the response is discarded.
func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			entry := m.logger.WithFields(logrus.Fields{
				"panic":  r,
				"method": c.Method(),
				"path":   c.Path(),
			})
			if traceID, ok := c.Locals(common.TraceIdKey).(string); ok {
				entry = entry.WithField("request_id", traceID)
			}
			if m.logger.IsLevelEnabled(logrus.DebugLevel) {
				entry = entry.WithField("stack", string(debug.Stack()))
			}
			entry.Error("panic recovered while handling request")

			c.Response().ResetBody()
			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}()

		return c.Next()
	}
}
