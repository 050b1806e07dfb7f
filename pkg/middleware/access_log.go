package middleware

import (
	"time"

	"github.com/flowops/flow-ops-backend/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type accessLogMiddleware struct {
	logger *logrus.Logger
}

// NewAccessLogMiddleware logs every request at debug level. Outcome logging
// for the Flow API relay is done by the handlers.
func NewAccessLogMiddleware(logger *logrus.Logger) Middleware {
	return &accessLogMiddleware{logger: logger}
}

func (m *accessLogMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(common.StartTimeContextKey, start)

		err := c.Next()

		if !m.logger.IsLevelEnabled(logrus.DebugLevel) {
			return err
		}

		fields := logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
			"request_id": RequestID(c),
		}
		if ua := ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage)); ua != nil {
			fields["user_agent"] = ua
		}
		m.logger.WithFields(fields).Debug("request completed")
		return err
	}
}
