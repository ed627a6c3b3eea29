package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	Operations      *prometheus.CounterVec
	RecordsIngested prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swiftindex_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiftindex_operations_total",
			Help: "Domain operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		RecordsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "swiftindex_records_ingested_total",
			Help: "Records applied to the store by the startup loader.",
		}),
	}
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(elapsed.Seconds())
}

// IncOperation counts one domain operation outcome.
func (m *Metrics) IncOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

// AddIngested counts records applied during bulk load.
func (m *Metrics) AddIngested(n int) {
	if m == nil {
		return
	}
	m.RecordsIngested.Add(float64(n))
}
