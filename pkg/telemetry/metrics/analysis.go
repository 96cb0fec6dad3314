package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/config"
)

// statuses lists every status so the dialog_status gauge can zero the ones a
// source left.
var statuses = []analysis.Status{
	analysis.StatusCompleted,
	analysis.StatusCanceled,
	analysis.StatusInProgress,
}

// AnalysisMetrics tracks analyzed exports.
//
// Metrics:
//   - chatlens_analyzer_analyses_total: analyses by resulting status
//   - chatlens_analyzer_requests_per_dialog: request records per export
//   - chatlens_analyzer_analysis_duration_seconds: load and analysis time
//   - chatlens_analyzer_dialog_status: 1 for the current status of a source
type AnalysisMetrics struct {
	analysesTotal     *prometheus.CounterVec
	requestsPerDialog prometheus.Histogram
	duration          prometheus.Histogram
	dialogStatus      *prometheus.GaugeVec
}

// NewAnalysisMetrics creates and registers analysis metrics with the provided registry.
func NewAnalysisMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AnalysisMetrics {
	am := &AnalysisMetrics{
		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analyses_total",
				Help:      "Total number of chat exports analyzed",
			},
			[]string{"status"},
		),

		requestsPerDialog: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_per_dialog",
				Help:      "Number of request records per analyzed export",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
			},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analysis_duration_seconds",
				Help:      "Time spent loading and analyzing one export",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8), // 0.5ms to ~8s
			},
		),

		dialogStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "dialog_status",
				Help:      "Current status of a watched export (1 for the active status)",
			},
			[]string{"source", "status"},
		),
	}

	registry.MustRegister(
		am.analysesTotal,
		am.requestsPerDialog,
		am.duration,
		am.dialogStatus,
	)

	return am
}

// RecordAnalysis records one analysis.
func (am *AnalysisMetrics) RecordAnalysis(status analysis.Status, requests int, duration time.Duration) {
	am.analysesTotal.WithLabelValues(string(status)).Inc()
	am.requestsPerDialog.Observe(float64(requests))
	am.duration.Observe(duration.Seconds())
}

// UpdateDialogStatus sets the gauge for status to 1 and the others to 0.
func (am *AnalysisMetrics) UpdateDialogStatus(source string, status analysis.Status) {
	for _, s := range statuses {
		value := 0.0
		if s == status {
			value = 1
		}
		am.dialogStatus.WithLabelValues(source, string(s)).Set(value)
	}
}
