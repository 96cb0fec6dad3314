package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/chatlens/pkg/config"
)

// HistoryMetrics tracks the report history store.
//
// Metrics:
//   - chatlens_analyzer_history_writes_total: store attempts by result
//   - chatlens_analyzer_history_pruned_total: reports removed by retention
type HistoryMetrics struct {
	writesTotal *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewHistoryMetrics creates and registers history metrics with the provided registry.
func NewHistoryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_writes_total",
				Help:      "Total number of reports written to history",
			},
			[]string{"result"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of reports removed by retention",
			},
		),
	}

	registry.MustRegister(hm.writesTotal, hm.prunedTotal)

	return hm
}

// RecordStore counts a store attempt as "success" or "error".
func (hm *HistoryMetrics) RecordStore(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	hm.writesTotal.WithLabelValues(result).Inc()
}

// RecordPruned adds deleted to the pruned counter.
func (hm *HistoryMetrics) RecordPruned(deleted int64) {
	if deleted > 0 {
		hm.prunedTotal.Add(float64(deleted))
	}
}
