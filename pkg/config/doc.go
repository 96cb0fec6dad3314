// Package config provides configuration management for chatlens.
//
// Configuration is read from YAML, layered over defaults, overridden by
// environment variables and validated as a whole.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("chatlens.yaml")                   // file only
//	cfg, err := config.LoadConfigWithEnvOverrides("chatlens.yaml")   // file + env
//	cfg, err := config.LoadConfigOrDefaults(path)                    // file optional
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CHATLENS_SECTION_FIELD:
//
//   - CHATLENS_ANALYZER_LOCALE overrides analyzer.locale
//   - CHATLENS_HISTORY_SQLITE_PATH overrides history.sqlite.path
//   - CHATLENS_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - CHATLENS_TELEMETRY_TRACING_ENDPOINT overrides telemetry.tracing.endpoint
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Active Configuration
//
// The CLI loads the configuration once per command and installs it for the
// components it builds:
//
//	if err := config.ReloadConfig("chatlens.yaml"); err != nil {
//		return err
//	}
//	cfg := config.GetConfig()
//
// # Example Configuration
//
//	analyzer:
//	  locale: ru
//	  status_texts:
//	    in_progress: "Still working"
//	loader:
//	  max_document_size: 32MB
//	processing:
//	  workers: 8
//	history:
//	  enabled: true
//	  backend: sqlite
//	  sqlite:
//	    path: data/chatlens.db
//	    driver: sqlite
//	  retention:
//	    days: 30
//	    schedule: "0 3 * * *"
//	telemetry:
//	  logging:
//	    level: debug
//	    format: json
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9090
//	  tracing:
//	    enabled: true
//	    sampler: ratio
//	    sample_ratio: 0.25
//	    endpoint: otel-collector:4317
package config
