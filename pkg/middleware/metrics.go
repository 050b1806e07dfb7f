package middleware

import (
	"fmt"
	"time"

	"github.com/flowops/flow-ops-backend/pkg/common"
	"github.com/flowops/flow-ops-backend/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, ok := c.Locals(common.StartTimeContextKey).(time.Time)
		if !ok {
			start = time.Now()
		}

		err := c.Next()

		route := routePattern(c)
		status := statusClass(c.Response().StatusCode())
		prometheus.RequestTotal.WithLabelValues(c.Method(), route, status).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.RequestLatency.WithLabelValues(route).
				Observe(float64(time.Since(start).Milliseconds()))
		}
		return err
	}
}

// routePattern avoids unbounded label cardinality from unmatched paths.
func routePattern(c *fiber.Ctx) string {
	r := c.Route()
	if r == nil || r.Path == "" || (r.Path == "/" && c.Path() != "/") {
		return "unmatched"
	}
	return r.Path
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
