package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatlens.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
analyzer:
  locale: ru
  status_texts:
    in_progress: "Still working"
loader:
  max_document_size: 2MiB
  skip_hidden: false
report:
  format: json
processing:
  workers: 8
history:
  enabled: true
  backend: sqlite
  sqlite:
    path: ./test.db
    driver: sqlite3
    busy_timeout: 2s
  retention:
    days: 30
    max_records: 1000
watch:
  debounce: 1s
telemetry:
  logging:
    level: debug
    format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Analyzer.Locale != "ru" {
		t.Errorf("expected locale %q, got %q", "ru", cfg.Analyzer.Locale)
	}
	if cfg.Analyzer.StatusTexts.InProgress != "Still working" {
		t.Errorf("expected override, got %q", cfg.Analyzer.StatusTexts.InProgress)
	}
	if cfg.Loader.SkipHidden {
		t.Error("expected skip_hidden false from file")
	}
	if n, _ := cfg.Loader.MaxDocumentBytes(); n != 2*1024*1024 {
		t.Errorf("expected 2MiB, got %d", n)
	}
	if cfg.Processing.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Processing.Workers)
	}
	if !cfg.History.Enabled || cfg.History.SQLite.Driver != "sqlite3" {
		t.Errorf("unexpected history config %+v", cfg.History)
	}
	if cfg.History.SQLite.BusyTimeout != 2*time.Second {
		t.Errorf("expected busy timeout 2s, got %v", cfg.History.SQLite.BusyTimeout)
	}
	if cfg.History.Retention.MaxRecords != 1000 {
		t.Errorf("expected 1000 max records, got %d", cfg.History.Retention.MaxRecords)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}

	// Unset sections keep their defaults.
	if !cfg.Report.Pretty {
		t.Error("expected report.pretty default to survive decoding")
	}
	if cfg.Telemetry.Metrics.Path != DefaultMetricsPath {
		t.Errorf("expected metrics path %q, got %q", DefaultMetricsPath, cfg.Telemetry.Metrics.Path)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"malformed yaml", "analyzer: [", "failed to parse"},
		{"invalid locale", "analyzer:\n  locale: de\n", "analyzer.locale"},
		{"invalid backend", "history:\n  backend: postgres\n", "history.backend"},
		{"invalid schedule", "history:\n  retention:\n    schedule: \"every day\"\n", "history.retention.schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "report:\n  format: json\n")

	t.Setenv("CHATLENS_REPORT_FORMAT", "csv")
	t.Setenv("CHATLENS_PROCESSING_WORKERS", "12")
	t.Setenv("CHATLENS_HISTORY_ENABLED", "true")
	t.Setenv("CHATLENS_HISTORY_BACKEND", "memory")
	t.Setenv("CHATLENS_HISTORY_RETENTION_MAX_RECORDS", "50")
	t.Setenv("CHATLENS_WATCH_DEBOUNCE", "2s")
	t.Setenv("CHATLENS_LOADER_EXTENSIONS", ".json, .chat")
	t.Setenv("CHATLENS_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("CHATLENS_WATCH_SKIP_HIDDEN", "not-a-bool")
	t.Setenv("CHATLENS_TELEMETRY_TRACING_ENABLED", "true")
	t.Setenv("CHATLENS_TELEMETRY_TRACING_ENDPOINT", "collector:4317")
	t.Setenv("CHATLENS_TELEMETRY_TRACING_SAMPLER", "never")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Report.Format != "csv" {
		t.Errorf("expected env to override format, got %q", cfg.Report.Format)
	}
	if cfg.Processing.Workers != 12 {
		t.Errorf("expected 12 workers, got %d", cfg.Processing.Workers)
	}
	if !cfg.History.Enabled || cfg.History.Backend != "memory" {
		t.Errorf("unexpected history config %+v", cfg.History)
	}
	if cfg.History.Retention.MaxRecords != 50 {
		t.Errorf("expected 50 max records, got %d", cfg.History.Retention.MaxRecords)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Loader.Extensions) != 2 || cfg.Loader.Extensions[1] != ".chat" {
		t.Errorf("expected extensions [.json .chat], got %v", cfg.Loader.Extensions)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level %q, got %q", "warn", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Watch.SkipHidden {
		t.Error("expected unparseable bool override to be ignored")
	}
	tr := cfg.Telemetry.Tracing
	if !tr.Enabled || tr.Endpoint != "collector:4317" || tr.Sampler != "never" {
		t.Errorf("unexpected tracing overrides %+v", tr)
	}
}

func TestLoadConfigOrDefaults(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := LoadConfigOrDefaults("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Report.Format != DefaultReportFormat {
			t.Errorf("expected default format, got %q", cfg.Report.Format)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CHATLENS_ANALYZER_LOCALE", "ru")
		cfg, err := LoadConfigOrDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Analyzer.Locale != "ru" {
			t.Errorf("expected env locale, got %q", cfg.Analyzer.Locale)
		}
	})

	t.Run("invalid file is still an error", func(t *testing.T) {
		if _, err := LoadConfigOrDefaults(writeConfig(t, "processing:\n  workers: -1\n")); err == nil {
			t.Error("expected validation error, got nil")
		}
	})
}
