package middleware

import (
	"context"
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type traceMiddleware struct{}

// NewTraceMiddleware stamps every request with a start time and a request id,
// reusing the caller's X-Request-Id when one is sent.
func NewTraceMiddleware() Middleware {
	return &traceMiddleware{}
}

func (m *traceMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		traceID := c.Get(common.RequestIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Locals(common.LatencyCtxKey, start)
		c.Locals(common.TraceIdKey, traceID)

		ctx := context.WithValue(c.UserContext(), common.TraceIdKey, traceID)
		ctx = context.WithValue(ctx, common.LatencyCtxKey, start)
		c.SetUserContext(ctx)

		c.Set(common.RequestIDHeader, traceID)
		return c.Next()
	}
}
