package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chunkwise"

// Metrics holds the service collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry           *prometheus.Registry
	chunksEmitted      *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	ingestRequests     *prometheus.CounterVec
	ingestDuration     prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		chunksEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_emitted_total",
			Help:      "Chunks produced, by strategy.",
		}, []string{"strategy"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_validation_failures_total",
			Help:      "Chunk metadata that failed schema validation, by document type.",
		}, []string{"document_type"}),
		ingestRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_requests_total",
			Help:      "Ingest batches processed, by outcome.",
		}, []string{"status"}),
		ingestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Wall time of one ingest batch.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.chunksEmitted,
		m.validationFailures,
		m.ingestRequests,
		m.ingestDuration,
	)
	return m
}

func (m *Metrics) ChunksEmitted(strategy string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.chunksEmitted.WithLabelValues(strategy).Add(float64(n))
}

func (m *Metrics) ValidationFailed(documentType string) {
	if m == nil {
		return
	}
	if documentType == "" {
		documentType = "unknown"
	}
	m.validationFailures.WithLabelValues(documentType).Inc()
}

// IngestObserved records one batch outcome ("ok" or "error") and its duration.
func (m *Metrics) IngestObserved(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ingestRequests.WithLabelValues(status).Inc()
	m.ingestDuration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
