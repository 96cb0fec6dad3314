package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/config"
)

// DefaultMaxSources caps the number of distinct sources tracked by the
// dialog_status gauge.
const DefaultMaxSources = 1000

// Collector records chatlens metrics on its own Prometheus registry.
// A disabled Collector accepts every call and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	analysisMetrics *AnalysisMetrics
	loadMetrics     *LoadMetrics
	historyMetrics  *HistoryMetrics

	// sources bounds the dialog_status label space
	sources *SourceLimiter
}

// NewCollector creates a collector. If registry is nil a fresh registry is
// used, so collectors never touch the global default registry.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "chatlens",
//		Subsystem: "analyzer",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg == nil {
		cfg = &config.MetricsConfig{Enabled: true}
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		analysisMetrics: NewAnalysisMetrics(cfg, registry),
		loadMetrics:     NewLoadMetrics(cfg, registry),
		historyMetrics:  NewHistoryMetrics(cfg, registry),
		sources:         NewSourceLimiter(DefaultMaxSources),
	}
}

// RecordAnalysis records one analyzed export.
//
// Parameters:
//   - status: the dialog status
//   - requests: number of request records in the export
//   - duration: time spent loading and analyzing
func (c *Collector) RecordAnalysis(status analysis.Status, requests int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.analysisMetrics.RecordAnalysis(status, requests, duration)
}

// UpdateDialogStatus sets the current status of a watched source. Sources
// beyond the cardinality limit are not tracked; it reports whether the
// update was recorded.
func (c *Collector) UpdateDialogStatus(source string, status analysis.Status) bool {
	if !c.config.Enabled {
		return false
	}

	if !c.sources.Allow(source) {
		return false
	}

	c.analysisMetrics.UpdateDialogStatus(source, status)
	return true
}

// RecordLoadError records an export that could not be loaded.
//
// Parameters:
//   - reason: a loader reason such as "not_found", "too_large" or "decode"
func (c *Collector) RecordLoadError(reason string) {
	if !c.config.Enabled {
		return
	}

	c.loadMetrics.RecordError(reason)
}

// RecordDocumentSize records the size of a loaded export in bytes.
func (c *Collector) RecordDocumentSize(size int64) {
	if !c.config.Enabled {
		return
	}

	c.loadMetrics.RecordSize(size)
}

// RecordHistoryStore records a report written to history.
func (c *Collector) RecordHistoryStore(err error) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordStore(err)
}

// RecordPruned records reports removed by retention.
func (c *Collector) RecordPruned(deleted int64) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordPruned(deleted)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}
