package config

import (
	"time"

	"mercator-hq/chatlens/pkg/analysis"
)

// Config is the root configuration structure for chatlens.
type Config struct {
	// Analyzer controls how dialog statuses are described.
	Analyzer AnalyzerConfig `yaml:"analyzer"`

	// Loader controls how chat exports are read from disk.
	Loader LoaderConfig `yaml:"loader"`

	// Report controls how analysis results are rendered.
	Report ReportConfig `yaml:"report"`

	// Processing controls directory scans.
	Processing ProcessingConfig `yaml:"processing"`

	// History contains configuration for persisting analysis reports
	// including backend selection and retention.
	History HistoryConfig `yaml:"history"`

	// Watch controls watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// AnalyzerConfig configures the status sentences reported with each status.
type AnalyzerConfig struct {
	// Locale selects the built-in sentences ("en" or "ru").
	// Default: "en"
	Locale string `yaml:"locale"`

	// StatusTexts overrides individual sentences after the locale is applied.
	StatusTexts analysis.StatusTexts `yaml:"status_texts"`
}

// Texts returns the locale sentences with the overrides applied.
func (c AnalyzerConfig) Texts() analysis.StatusTexts {
	texts, ok := analysis.StatusTextsFor(c.Locale)
	if !ok {
		texts = analysis.DefaultStatusTexts
	}
	return texts.Merge(c.StatusTexts)
}

// LoaderConfig contains configuration for reading exports.
type LoaderConfig struct {
	// MaxDocumentSize is the largest export that will be decoded, as a human
	// readable size ("64MB", "512 KiB").
	// Default: "64MB"
	MaxDocumentSize string `yaml:"max_document_size"`

	// Extensions lists the file extensions considered chat exports during
	// directory scans and watch mode.
	// Default: [".json", ".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`

	// SkipHidden ignores dot files and dot directories.
	// Default: true
	SkipHidden bool `yaml:"skip_hidden"`
}

// ReportConfig contains configuration for rendering results.
type ReportConfig struct {
	// Format is the default output format ("text", "json", "csv").
	// Default: "text"
	Format string `yaml:"format"`

	// Pretty indents JSON output.
	// Default: true
	Pretty bool `yaml:"pretty"`
}

// ProcessingConfig contains configuration for batch analysis.
type ProcessingConfig struct {
	// Workers is the number of exports analyzed concurrently.
	// Default: 4
	Workers int `yaml:"workers"`
}

// HistoryConfig contains configuration for the report history store.
type HistoryConfig struct {
	// Enabled stores every report produced by the CLI.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend is the storage backend ("sqlite" or "memory").
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention controls pruning of old reports.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains configuration for the SQLite history backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/chatlens.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver: "sqlite" (pure Go) or
	// "sqlite3" (cgo).
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a writer waits for a lock.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains configuration for history pruning.
type RetentionConfig struct {
	// Days is how long reports are kept. 0 keeps reports forever.
	// Default: 90
	Days int `yaml:"days"`

	// MaxRecords caps the number of stored reports. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is a standard 5-field cron expression for automatic pruning
	// while watch mode runs.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last write to a file before it
	// is analyzed.
	// Default: 250ms
	Debounce time.Duration `yaml:"debounce"`

	// SkipHidden ignores events for dot files.
	// Default: true
	SkipHidden bool `yaml:"skip_hidden"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format ("json", "text", "console").
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPII masks usernames, emails and secrets in log fields.
	// Default: false
	RedactPII bool `yaml:"redact_pii"`

	// RedactPatterns contains custom redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled serves metrics while watch mode runs.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address of the metrics endpoint.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace.
	// Default: "chatlens"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "analyzer"
	Subsystem string `yaml:"subsystem"`

	// Health serves /health, /ready and /version next to the metrics path.
	// Default: true
	Health bool `yaml:"health"`
}

// TracingConfig contains configuration for OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "chatlens"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
