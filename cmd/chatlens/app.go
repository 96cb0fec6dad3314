package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/config"
	"mercator-hq/chatlens/pkg/history"
	"mercator-hq/chatlens/pkg/loader"
	"mercator-hq/chatlens/pkg/processing"
	"mercator-hq/chatlens/pkg/telemetry/logging"
	"mercator-hq/chatlens/pkg/telemetry/metrics"
	"mercator-hq/chatlens/pkg/telemetry/tracing"
)

// tracerShutdownTimeout bounds the final span flush on exit.
const tracerShutdownTimeout = 5 * time.Second

// app holds the components a command works with, built from the loaded
// configuration.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	analyzer  *analysis.Analyzer
	loader    *loader.Loader
	storage   history.Storage
	collector *metrics.Collector
	tracer    *tracing.Tracer
}

// newApp builds the analyzer, loader and tracer, and opens the history store
// when history.enabled is set.
func newApp() (*app, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, cli.NewConfigError("", "configuration not loaded")
	}

	l := logger
	if l == nil {
		l = logging.FromSlog(nil)
	}

	loaderCfg, err := loader.FromConfig(cfg.Loader)
	if err != nil {
		return nil, cli.NewConfigError("loader.max_document_size", err.Error())
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, tracing.WithServiceVersion(Version))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if tracer.Enabled() {
		l.Debug("tracing enabled", "endpoint", cfg.Telemetry.Tracing.Endpoint, "sampler", cfg.Telemetry.Tracing.Sampler)
	}

	a := &app{
		cfg:      cfg,
		logger:   l,
		analyzer: analysis.New(analysis.WithStatusTexts(cfg.Analyzer.Texts())),
		loader:   loader.New(loaderCfg),
		tracer:   tracer,
	}

	if cfg.History.Enabled {
		storage, err := history.NewStorage(cfg.History)
		if err != nil {
			_ = tracer.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		a.storage = storage
	}

	return a, nil
}

// enableMetrics creates the Prometheus collector when metrics are enabled.
func (a *app) enableMetrics() {
	if a.cfg.Telemetry.Metrics.Enabled {
		a.collector = metrics.NewCollector(&a.cfg.Telemetry.Metrics, nil)
	}
}

// processor returns a processor over the app components. A nil progress
// reporter disables progress output.
func (a *app) processor(progress cli.ProgressReporter) *processing.Processor {
	return processing.NewProcessor(processing.Options{
		Analyzer:  a.analyzer,
		Loader:    a.loader,
		Storage:   a.storage,
		Collector: a.collector,
		Tracer:    a.tracer,
		Logger:    a.logger,
		Workers:   a.cfg.Processing.Workers,
		Progress:  progress,
	})
}

// Close flushes pending spans and releases the history store.
func (a *app) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
	defer cancel()

	var errs []error
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
		}
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// formatter resolves --format, falling back to report.format.
func (a *app) formatter() (cli.Formatter, error) {
	name := outputFormat
	if name == "" {
		name = a.cfg.Report.Format
	}

	format, err := cli.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	if format == cli.FormatJSON {
		return &cli.JSONFormatter{Indent: a.cfg.Report.Pretty}, nil
	}
	return cli.NewFormatter(format), nil
}

// render writes data to the command output in the selected format.
func (a *app) render(cmd *cobra.Command, data any) error {
	f, err := a.formatter()
	if err != nil {
		return err
	}
	return f.FormatTo(cmd.OutOrStdout(), data)
}

// reportFailures prints per-file errors to w.
func reportFailures(w io.Writer, errs []error) {
	for _, err := range errs {
		fmt.Fprintf(w, "error: %v\n", err)
	}
}
