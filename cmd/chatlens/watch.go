package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/history"
	"mercator-hq/chatlens/pkg/history/retention"
	"mercator-hq/chatlens/pkg/processing"
	"mercator-hq/chatlens/pkg/report"
	"mercator-hq/chatlens/pkg/telemetry/health"
	"mercator-hq/chatlens/pkg/watch"
)

// healthCheckTimeout bounds each readiness check.
const healthCheckTimeout = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Re-analyze chat exports whenever they change",
	Long: `Watch an export file or a directory of exports and re-analyze every
export the assistant creates or rewrites. A line is printed every time a
dialog changes status, for example from in_progress to completed.

When telemetry.metrics.enabled is set, Prometheus metrics are served on
telemetry.metrics.listen_address, together with /health, /ready and /version
unless telemetry.metrics.health is false. When history is enabled and
history.retention.schedule is set, old reports are pruned on that schedule.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// transitionPrinter reports status changes for watch mode.
type transitionPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	tracker *processing.StatusTracker
}

func (tp *transitionPrinter) observe(rep *report.Report) {
	tr, changed := tp.tracker.Observe(rep)
	if !changed {
		return
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	if tr.From == "" {
		fmt.Fprintf(tp.out, "%s: %s (%s)\n", tr.Source, tr.To, rep.Status.StatusText)
		return
	}
	fmt.Fprintf(tp.out, "%s: %s -> %s (%s)\n", tr.Source, tr.From, tr.To, rep.Status.StatusText)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	a.enableMetrics()

	ctx := cli.SetupSignalHandler()
	if parent := cmd.Context(); parent != nil {
		var cancel context.CancelFunc
		ctx, cancel = mergeDone(ctx, parent)
		defer cancel()
	}

	checker := newHealthChecker(a)

	if a.collector != nil {
		srv, err := startMetricsServer(a, checker)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if a.storage != nil {
		pruner := retention.NewPruner(a.storage, retention.ConfigFrom(a.cfg.History.Retention))
		if a.collector != nil {
			pruner.OnPrune(a.collector.RecordPruned)
		}
		scheduler := retention.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			a.logger.Warn("failed to start retention scheduler", "error", err)
		} else {
			defer scheduler.Stop()
			if next := scheduler.NextRun(); next != nil {
				a.logger.Debug("retention scheduler started", "next_run", next)
			}
		}
	}

	proc := a.processor(nil)
	printer := &transitionPrinter{out: cmd.OutOrStdout(), tracker: processing.NewStatusTracker()}
	observe := func(rep *report.Report) {
		printer.observe(rep)
		if a.collector != nil {
			a.collector.UpdateDialogStatus(rep.Source, rep.Status.Status)
		}
	}

	// Initial pass so the first change is reported against a known status.
	reports, failed := proc.ProcessDir(ctx, args[0])
	for _, rep := range reports {
		observe(rep)
	}
	for _, err := range failed {
		a.logger.Warn("initial analysis failed", "error", err)
	}

	watcher, err := watch.NewFileWatcher(watch.FromConfig(args[0], a.cfg), a.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer watcher.Stop()
	checker.RegisterCheck("watcher", func(context.Context) error {
		if !watcher.IsRunning() {
			return errors.New("watcher is not running")
		}
		return nil
	})

	err = watcher.Watch(ctx, func(path string) error {
		rep, err := proc.ProcessFile(ctx, path)
		if err != nil {
			return err
		}
		observe(rep)
		return nil
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// newHealthChecker registers the history check when history is enabled.
func newHealthChecker(a *app) *health.Checker {
	checker := health.New(healthCheckTimeout)
	if a.storage != nil {
		checker.RegisterCheck("history", func(ctx context.Context) error {
			_, err := a.storage.Count(ctx, &history.Query{})
			return err
		})
	}
	return checker
}

// startMetricsServer serves the collector registry until shutdown. The
// health endpoints are mounted on the same mux when enabled.
func startMetricsServer(a *app, checker *health.Checker) (*http.Server, error) {
	cfg := a.cfg.Telemetry.Metrics

	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return nil, fmt.Errorf("metrics server failed: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, a.collector.Handler())
	if cfg.Health && checker != nil {
		health.Register(mux, checker, buildInfo())
	}

	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("serving metrics", "address", srv.Addr, "path", cfg.Path)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()

	return srv, nil
}

// mergeDone returns a context canceled when either a or b is done.
func mergeDone(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
