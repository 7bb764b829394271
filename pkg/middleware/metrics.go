package middleware

import (
	"fmt"
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/common"
	"github.com/NeuralTrust/GateFilters/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct {
	enabled bool
}

func NewMetricsMiddleware(enabled bool) Middleware {
	return &metricsMiddleware{enabled: enabled}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}

		startTime, ok := c.Locals(common.LatencyCtxKey).(time.Time)
		if !ok {
			startTime = time.Now()
		}

		err := c.Next()

		routeID, ok := c.Locals(common.RouteIDKey).(string)
		if !ok || routeID == "" {
			routeID = common.UnmatchedRoute
		}
		statusCode := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				statusCode = fiberErr.Code
			}
		}

		prometheus.GatewayRequestTotal.WithLabelValues(
			routeID,
			c.Method(),
			statusClass(statusCode),
		).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.GatewayRequestLatency.WithLabelValues(routeID, "total").
				Observe(float64(time.Since(startTime).Microseconds()) / 1000)
		}
		return err
	}
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", status/100)
}
