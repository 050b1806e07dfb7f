package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(prometheus.Labels{"service": "flow-ops-backend"}, registry)

var (
	// Latency buckets in milliseconds, up to the 30s upstream timeout.
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowops_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "route", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flowops_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	UpstreamLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flowops_upstream_latency_ms",
			Help:    "Flow API latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"outcome"},
	)

	UpstreamRequests = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowops_upstream_requests_total",
			Help: "Flow API calls by outcome",
		},
		[]string{"outcome"},
	)
)

type MetricsConfig struct {
	EnableLatency  bool // Inbound request latency
	EnableUpstream bool // Flow API outcome counter and latency
}

var (
	Config   MetricsConfig
	initOnce sync.Once
)

// Initialize sets the active metrics config and registers the process
// collector. Only the first call registers collectors.
func Initialize(cfg MetricsConfig) {
	Config = cfg
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

// Gatherer exposes the registry backing every metric in this package.
func Gatherer() prometheus.Gatherer {
	return registry
}
