package server

import (
	"github.com/flowops/flow-ops-backend/pkg/config"
	"github.com/flowops/flow-ops-backend/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const MetricsPath = "/metrics"

// MetricsServer exposes the Prometheus registry on its own port so that
// scraping never shares the API listener.
type MetricsServer struct {
	*BaseServer
}

func NewMetricsServer(cfg *config.Config, logger *logrus.Logger) *MetricsServer {
	s := &MetricsServer{
		BaseServer: NewBaseServer(cfg, logger),
	}
	s.Router.Use(recover.New())

	handler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(prometheus.Gatherer(), promhttp.HandlerOpts{}),
	)
	s.Router.Get(MetricsPath, func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})
	return s
}

func (s *MetricsServer) Run() error {
	addr := s.addr(s.Config.Server.MetricsPort)
	s.Logger.WithField("addr", addr).Info("Starting metrics server")
	return s.Router.Listen(addr)
}

func (s *MetricsServer) Shutdown() error {
	return s.Router.Shutdown()
}
