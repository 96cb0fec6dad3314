// Package metrics provides Prometheus metrics for chatlens.
//
// # Metrics
//
// All names carry the configured namespace and subsystem, chatlens_analyzer
// by default:
//
//   - analyses_total{status}: analyzed exports by resulting status
//   - requests_per_dialog: histogram of request records per export
//   - analysis_duration_seconds: histogram of load and analysis time
//   - dialog_status{source,status}: 1 for the current status of a watched
//     export, 0 for the others
//   - load_errors_total{reason}: exports that could not be loaded
//   - document_size_bytes: histogram of export sizes
//   - history_writes_total{result}: reports written to history
//   - history_pruned_total: reports removed by retention
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordAnalysis(analysis.StatusCompleted, 3, 2*time.Millisecond)
//
//	mux := http.NewServeMux()
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// Each Collector owns its registry, so tests can create as many as they need.
// The number of sources tracked by dialog_status is capped by
// DefaultMaxSources.
package metrics
