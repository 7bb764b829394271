package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	filterLabels = []string{"filter", "phase"}

	// Filter latency buckets in milliseconds. Filters are computation-only
	// apart from the bucket store round trip.
	filterLatencyBuckets = []float64{
		0.05, 0.1, 0.25,
		0.5, 1, 2.5,
		5, 10, 25,
		50, 100,
	}

	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	GatewayRequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"route", "method", "status"},
	)

	GatewayRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route", "type"}, // type can be "total" or "upstream"
	)

	FilterDecisions = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_filter_decisions_total",
			Help: "Filter invocations by outcome",
		},
		append(filterLabels, "outcome"),
	)

	FilterLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_filter_latency_ms",
			Help:    "Filter execution latency in milliseconds",
			Buckets: filterLatencyBuckets,
		},
		filterLabels,
	)

	BucketStoreErrors = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_bucket_store_errors_total",
			Help: "Rate limit bucket store failures by resolution",
		},
		[]string{"store", "resolution"}, // resolution is "fail_open" or "fail_closed"
	)
)

type MetricsConfig struct {
	EnableLatency         bool // Request latency metrics
	EnableUpstreamLatency bool // Upstream latency (one series per route)
	EnableFilters         bool // Filter decision counters and latency
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:         true,
		EnableUpstreamLatency: false,
		EnableFilters:         true,
	}
}

var (
	Config     = DefaultMetricsConfig()
	initialize sync.Once
)

func Initialize(cfg MetricsConfig) {
	Config = cfg
	initialize.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	})
}

// Handler serves the gateway registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// Gatherer exposes the gateway registry, mostly for tests.
func Gatherer() prometheus.Gatherer {
	return registry
}
