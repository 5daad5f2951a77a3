package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RateLimited         prometheus.Counter
	AuthAttempts        prometheus.Counter
	AuthFailures        *prometheus.CounterVec
	EntityOperations    *prometheus.CounterVec
	SearchResults       *prometheus.HistogramVec
}

// New registers the collectors on reg with the given name prefix.
func New(reg prometheus.Registerer, prefix string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_rate_limited_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
		AuthAttempts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_attempts_total",
				Help: "Total number of login attempts",
			},
		),
		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_failures_total",
				Help: "Total number of rejected logins and tokens",
			},
			[]string{"reason"},
		),
		EntityOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_entity_operations_total",
				Help: "Total number of entity operations by outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
		SearchResults: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_search_results",
				Help:    "Number of entities returned by criteria searches",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"entity"},
		),
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path, status string, started time.Time) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(started).Seconds())
}

// RecordOperation counts an entity operation. err decides the outcome label.
func (m *Metrics) RecordOperation(entity, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.EntityOperations.WithLabelValues(entity, operation, outcome).Inc()
}
