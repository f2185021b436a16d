package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics is registered per server so that tests can build many servers
// in one process.
type metrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	outcomes  *prometheus.CounterVec
	cacheHits prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		// Labels: route, status (HTTP status code)
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bce",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"route", "status"}),

		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bce",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"route"}),

		// Labels: result ("balanced" or an error code)
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bce",
			Subsystem: "balance",
			Name:      "outcomes_total",
			Help:      "Balance results by outcome",
		}, []string{"result"}),

		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "bce",
			Subsystem: "balance",
			Name:      "cache_hits_total",
			Help:      "Balance requests answered from history",
		}),
	}
}
