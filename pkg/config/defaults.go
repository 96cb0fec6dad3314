package config

import "time"

// Default values for configuration fields.
const (
	// Analyzer defaults
	DefaultLocale = "en"

	// Loader defaults
	DefaultMaxDocumentSize  = "64MB"
	DefaultLoaderSkipHidden = true

	// Report defaults
	DefaultReportFormat = "text"
	DefaultReportPretty = true

	// Processing defaults
	DefaultWorkers = 4
	MaxWorkers     = 256

	// History defaults
	DefaultHistoryEnabled      = false
	DefaultHistoryBackend      = "sqlite"
	DefaultSQLitePath          = "data/chatlens.db"
	DefaultSQLiteDriver        = "sqlite"
	DefaultSQLiteMaxOpenConns  = 4
	DefaultSQLiteWALMode       = true
	DefaultSQLiteBusyTimeout   = 5 * time.Second
	DefaultRetentionDays       = 90
	DefaultRetentionMaxRecords = int64(0)
	DefaultRetentionSchedule   = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce   = 250 * time.Millisecond
	DefaultWatchSkipHidden = true

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultMetricsEnabled   = false
	DefaultMetricsListen    = "127.0.0.1:9090"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "chatlens"
	DefaultMetricsSubsystem = "analyzer"
	DefaultMetricsHealth    = true
	DefaultTracingEnabled   = false
	DefaultTracingSampler   = "always"
	DefaultTracingRatio     = 1.0
	DefaultTracingEndpoint  = "localhost:4317"
	DefaultTracingService   = "chatlens"
	DefaultOTLPInsecure     = true
	DefaultOTLPTimeout      = 10 * time.Second
)

// DefaultExtensions are the file extensions treated as chat exports.
func DefaultExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// DefaultConfig returns a configuration with every field set to its default,
// including boolean fields that ApplyDefaults cannot distinguish from an
// explicit false.
func DefaultConfig() *Config {
	cfg := &Config{
		Loader: LoaderConfig{
			SkipHidden: DefaultLoaderSkipHidden,
		},
		Report: ReportConfig{
			Pretty: DefaultReportPretty,
		},
		History: HistoryConfig{
			Enabled: DefaultHistoryEnabled,
			SQLite: SQLiteConfig{
				WALMode: DefaultSQLiteWALMode,
			},
			Retention: RetentionConfig{
				Days: DefaultRetentionDays,
			},
		},
		Watch: WatchConfig{
			SkipHidden: DefaultWatchSkipHidden,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
				Health:  DefaultMetricsHealth,
			},
			Tracing: TracingConfig{
				Enabled: DefaultTracingEnabled,
				OTLP: OTLPConfig{
					Insecure: DefaultOTLPInsecure,
				},
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults. Boolean fields
// are left alone; DefaultConfig sets them before a file is decoded.
func ApplyDefaults(cfg *Config) {
	// Analyzer defaults
	if cfg.Analyzer.Locale == "" {
		cfg.Analyzer.Locale = DefaultLocale
	}

	// Loader defaults
	if cfg.Loader.MaxDocumentSize == "" {
		cfg.Loader.MaxDocumentSize = DefaultMaxDocumentSize
	}
	if len(cfg.Loader.Extensions) == 0 {
		cfg.Loader.Extensions = DefaultExtensions()
	}

	// Report defaults
	if cfg.Report.Format == "" {
		cfg.Report.Format = DefaultReportFormat
	}

	// Processing defaults
	if cfg.Processing.Workers == 0 {
		cfg.Processing.Workers = DefaultWorkers
	}

	// History defaults
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultSQLitePath
	}
	if cfg.History.SQLite.Driver == "" {
		cfg.History.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.History.Retention.Schedule == "" {
		cfg.History.Retention.Schedule = DefaultRetentionSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListen
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingRatio
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}
