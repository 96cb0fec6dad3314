package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/chatlens/pkg/config"
)

// LoadMetrics tracks reading exports from disk.
//
// Metrics:
//   - chatlens_analyzer_load_errors_total: failed loads by reason
//   - chatlens_analyzer_document_size_bytes: size of loaded exports
type LoadMetrics struct {
	errorsTotal *prometheus.CounterVec
	sizeBytes   prometheus.Histogram
}

// NewLoadMetrics creates and registers load metrics with the provided registry.
func NewLoadMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LoadMetrics {
	lm := &LoadMetrics{
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "load_errors_total",
				Help:      "Total number of exports that could not be loaded",
			},
			[]string{"reason"},
		),

		sizeBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "document_size_bytes",
				Help:      "Size of loaded chat exports in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1KB to 256MB
			},
		),
	}

	registry.MustRegister(lm.errorsTotal, lm.sizeBytes)

	return lm
}

// RecordError increments the error counter for reason.
func (lm *LoadMetrics) RecordError(reason string) {
	lm.errorsTotal.WithLabelValues(reason).Inc()
}

// RecordSize observes the size of a loaded export.
func (lm *LoadMetrics) RecordSize(size int64) {
	if size >= 0 {
		lm.sizeBytes.Observe(float64(size))
	}
}
