package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "CHATLENS_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// Environment variables are not consulted; use LoadConfigWithEnvOverrides
// for that.
func LoadConfig(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention CHATLENS_SECTION_FIELD (e.g., CHATLENS_HISTORY_SQLITE_PATH) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Start from defaults
// 2. Decode YAML from file on top
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigOrDefaults behaves like LoadConfigWithEnvOverrides, except that an
// empty path or a missing file yields the defaults with environment overrides
// applied. The CLI uses it so chatlens works without a config file.
func LoadConfigOrDefaults(path string) (*Config, error) {
	if path != "" {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func decodeFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Fields the file explicitly emptied fall back to defaults.
	ApplyDefaults(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Unparseable numeric, boolean and duration values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Analyzer overrides
	setString(&cfg.Analyzer.Locale, "ANALYZER_LOCALE")

	// Loader overrides
	setString(&cfg.Loader.MaxDocumentSize, "LOADER_MAX_DOCUMENT_SIZE")
	if val := env("LOADER_EXTENSIONS"); val != "" {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		if len(exts) > 0 {
			cfg.Loader.Extensions = exts
		}
	}
	setBool(&cfg.Loader.SkipHidden, "LOADER_SKIP_HIDDEN")

	// Report overrides
	setString(&cfg.Report.Format, "REPORT_FORMAT")
	setBool(&cfg.Report.Pretty, "REPORT_PRETTY")

	// Processing overrides
	setInt(&cfg.Processing.Workers, "PROCESSING_WORKERS")

	// History overrides
	setBool(&cfg.History.Enabled, "HISTORY_ENABLED")
	setString(&cfg.History.Backend, "HISTORY_BACKEND")
	setString(&cfg.History.SQLite.Path, "HISTORY_SQLITE_PATH")
	setString(&cfg.History.SQLite.Driver, "HISTORY_SQLITE_DRIVER")
	setDuration(&cfg.History.SQLite.BusyTimeout, "HISTORY_SQLITE_BUSY_TIMEOUT")
	setInt(&cfg.History.Retention.Days, "HISTORY_RETENTION_DAYS")
	if val := env("HISTORY_RETENTION_MAX_RECORDS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.History.Retention.MaxRecords = i
		}
	}
	setString(&cfg.History.Retention.Schedule, "HISTORY_RETENTION_SCHEDULE")

	// Watch overrides
	setDuration(&cfg.Watch.Debounce, "WATCH_DEBOUNCE")
	setBool(&cfg.Watch.SkipHidden, "WATCH_SKIP_HIDDEN")

	// Telemetry overrides
	setString(&cfg.Telemetry.Logging.Level, "TELEMETRY_LOGGING_LEVEL")
	setString(&cfg.Telemetry.Logging.Format, "TELEMETRY_LOGGING_FORMAT")
	setBool(&cfg.Telemetry.Logging.RedactPII, "TELEMETRY_LOGGING_REDACT_PII")
	setBool(&cfg.Telemetry.Metrics.Enabled, "TELEMETRY_METRICS_ENABLED")
	setString(&cfg.Telemetry.Metrics.ListenAddress, "TELEMETRY_METRICS_LISTEN_ADDRESS")
	setString(&cfg.Telemetry.Metrics.Path, "TELEMETRY_METRICS_PATH")
	setBool(&cfg.Telemetry.Tracing.Enabled, "TELEMETRY_TRACING_ENABLED")
	setString(&cfg.Telemetry.Tracing.Endpoint, "TELEMETRY_TRACING_ENDPOINT")
	setString(&cfg.Telemetry.Tracing.Sampler, "TELEMETRY_TRACING_SAMPLER")
}

func env(name string) string {
	return os.Getenv(EnvPrefix + name)
}

func setString(dst *string, name string) {
	if val := env(name); val != "" {
		*dst = val
	}
}

func setBool(dst *bool, name string) {
	if val := env(name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func setInt(dst *int, name string) {
	if val := env(name); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func setDuration(dst *time.Duration, name string) {
	if val := env(name); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
