package dependency_container

import (
	"fmt"

	"github.com/flowops/flow-ops-backend/pkg/config"
	handlers "github.com/flowops/flow-ops-backend/pkg/handlers/http"
	"github.com/flowops/flow-ops-backend/pkg/infra/flowapi"
	"github.com/flowops/flow-ops-backend/pkg/infra/httpx"
	"github.com/flowops/flow-ops-backend/pkg/middleware"
	"github.com/flowops/flow-ops-backend/pkg/version"
	"github.com/sirupsen/logrus"
)

type Container struct {
	FlowClient          flowapi.Client
	HandlerTransport    *handlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// HTTPClient overrides the outbound transport. Nil builds the default
	// fasthttp client from Cfg.Flow.
	HTTPClient httpx.Client
}

func NewContainer(di ContainerDI) (*Container, error) {
	if di.Cfg == nil || di.Logger == nil {
		return nil, fmt.Errorf("container requires config and logger")
	}

	httpClient := di.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = newFlowHTTPClient(di.Cfg.Flow)
		if err != nil {
			return nil, err
		}
	}

	if !di.Cfg.Flow.HasToken() {
		di.Logger.Warn("FLOW_TOKEN not configured; raw data endpoints will answer 500")
	}
	di.Logger.WithField("base_url", di.Cfg.Flow.BaseURL).Info("Flow API client configured")

	flowClient := flowapi.NewClient(di.Cfg.Flow, httpClient)

	handlerTransport := &handlers.HandlerTransport{
		RootHandler:          handlers.NewRootHandler(),
		HealthHandler:        handlers.NewHealthHandler(),
		GetVersionHandler:    handlers.NewGetVersionHandler(),
		RawDataHandler:       handlers.NewRawDataHandler(di.Logger, flowClient),
		RawDataFieldsHandler: handlers.NewRawDataFieldsHandler(di.Logger, flowClient),
	}

	cors := di.Cfg.CORS
	middlewareTransport := &middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(),
		CORSMiddleware: middleware.NewCORSGlobalMiddleware(
			cors.AllowOrigins,
			cors.AllowMethods,
			cors.AllowHeaders,
			cors.AllowCredentials,
			cors.ExposeHeaders,
			cors.MaxAge,
		),
		AccessLogMiddleware: middleware.NewAccessLogMiddleware(di.Logger),
	}
	if di.Cfg.Metrics.Enabled {
		middlewareTransport.MetricsMiddleware = middleware.NewMetricsMiddleware()
	}

	return &Container{
		FlowClient:          flowClient,
		HandlerTransport:    handlerTransport,
		MiddlewareTransport: middlewareTransport,
	}, nil
}

func newFlowHTTPClient(cfg config.FlowConfig) (httpx.Client, error) {
	tlsConfig, err := config.BuildUpstreamTLSConfig(cfg.TLS)
	if err != nil {
		return nil, fmt.Errorf("failed to build flow api tls config: %w", err)
	}

	var client httpx.Client = httpx.NewFastHTTPClient(
		httpx.WithTimeout(cfg.Timeout),
		httpx.WithUserAgent(version.UserAgent()),
		httpx.WithTLSConfig(tlsConfig),
		httpx.WithMaxConnsPerHost(cfg.MaxConnsPerHost),
		httpx.WithMaxResponseBodySize(cfg.MaxResponseBodySize),
	)
	if cfg.CircuitBreaker.Enabled {
		breaker := httpx.NewCircuitBreaker("flow-api", cfg.CircuitBreaker.OpenTimeout, cfg.CircuitBreaker.MaxFailures)
		client = httpx.NewCircuitBreakerClient(client, breaker)
	}
	return client, nil
}
