package processing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/config"
	"mercator-hq/chatlens/pkg/history"
	"mercator-hq/chatlens/pkg/loader"
	"mercator-hq/chatlens/pkg/report"
	"mercator-hq/chatlens/pkg/telemetry/logging"
	"mercator-hq/chatlens/pkg/telemetry/metrics"
	"mercator-hq/chatlens/pkg/telemetry/tracing"
)

// Options configures a Processor. Storage, Collector and Tracer are optional.
type Options struct {
	Analyzer  *analysis.Analyzer
	Loader    *loader.Loader
	Storage   history.Storage
	Collector *metrics.Collector
	Tracer    *tracing.Tracer
	Logger    *logging.Logger

	// Workers bounds ProcessDir concurrency. Default: 4
	Workers int

	// Progress receives ProcessDir progress. Default: no output
	Progress cli.ProgressReporter

	// Now stamps reports. Default: time.Now
	Now func() time.Time
}

// Processor orchestrates loading, analysis, history and metrics.
// It is safe for concurrent use.
type Processor struct {
	analyzer  *analysis.Analyzer
	loader    *loader.Loader
	storage   history.Storage
	collector *metrics.Collector
	tracer    *tracing.Tracer
	logger    *logging.Logger
	workers   int
	progress  cli.ProgressReporter
	now       func() time.Time
}

// NewProcessor creates a processor, filling unset options with defaults.
func NewProcessor(opts Options) *Processor {
	p := &Processor{
		analyzer:  opts.Analyzer,
		loader:    opts.Loader,
		storage:   opts.Storage,
		collector: opts.Collector,
		tracer:    opts.Tracer,
		logger:    opts.Logger,
		workers:   opts.Workers,
		progress:  opts.Progress,
		now:       opts.Now,
	}

	if p.analyzer == nil {
		p.analyzer = analysis.New()
	}
	if p.loader == nil {
		p.loader = loader.New(loader.Config{})
	}
	if p.tracer == nil {
		p.tracer = tracing.Noop()
	}
	if p.logger == nil {
		p.logger = logging.FromSlog(nil)
	}
	p.logger = p.logger.With("component", "processing")
	if p.workers <= 0 {
		p.workers = config.DefaultWorkers
	}
	if p.progress == nil {
		p.progress = cli.NoopProgress{}
	}
	if p.now == nil {
		p.now = time.Now
	}

	return p
}

// ProcessFile loads and analyzes one export.
func (p *Processor) ProcessFile(ctx context.Context, path string) (rep *report.Report, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, tracing.SpanProcessFile)
	defer func() {
		tracing.SetStatus(span, err)
		span.End()
	}()

	start := time.Now()
	ctx = logging.WithSource(ctx, path)

	exp, err := p.loader.LoadFile(path)
	if err != nil {
		tracing.SetSourceAttributes(span, path, "", 0)
		p.recordLoadError(ctx, err)
		return nil, err
	}
	tracing.SetSourceAttributes(span, path, string(exp.Format), exp.Size)
	if p.collector != nil {
		p.collector.RecordDocumentSize(exp.Size)
	}

	return p.process(ctx, path, exp.Document, start)
}

// ProcessReader decodes and analyzes an export read from r. source names it
// in the report, "-" for standard input.
func (p *Processor) ProcessReader(ctx context.Context, source string, r io.Reader, format loader.Format) (rep *report.Report, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, tracing.SpanProcessReader)
	defer func() {
		tracing.SetStatus(span, err)
		span.End()
	}()
	tracing.SetSourceAttributes(span, source, string(format), 0)

	start := time.Now()
	ctx = logging.WithSource(ctx, source)

	doc, err := p.loader.Decode(r, format)
	if err != nil {
		p.recordLoadError(ctx, err)
		return nil, err
	}

	return p.process(ctx, source, doc, start)
}

// ProcessDocument analyzes an already decoded document.
func (p *Processor) ProcessDocument(ctx context.Context, source string, doc any) (*report.Report, error) {
	return p.process(logging.WithSource(ctx, source), source, doc, time.Now())
}

func (p *Processor) process(ctx context.Context, source string, doc any, start time.Time) (*report.Report, error) {
	rep := report.Build(p.analyzer, source, doc, p.now())
	ctx = logging.WithAnalysisID(ctx, rep.ID)
	tracing.SetReportAttributes(trace.SpanFromContext(ctx), string(rep.Status.Status), rep.RequestsCount, rep.Users.Requester)

	if p.collector != nil {
		p.collector.RecordAnalysis(rep.Status.Status, rep.RequestsCount, time.Since(start))
	}

	if p.storage != nil {
		err := p.storage.Store(ctx, history.FromReport(rep))
		if p.collector != nil {
			p.collector.RecordHistoryStore(err)
		}
		if err != nil {
			p.logger.ErrorContext(ctx, "failed to store report", "error", err)
			return nil, fmt.Errorf("failed to store report for %s: %w", source, err)
		}
	}

	p.logger.DebugContext(ctx, "export analyzed",
		"requester", rep.Users.Requester,
		"requests", rep.RequestsCount,
		"status", rep.Status.Status,
	)

	return rep, nil
}

func (p *Processor) recordLoadError(ctx context.Context, err error) {
	reason := loader.ReasonOf(err)
	if p.collector != nil {
		p.collector.RecordLoadError(reason)
	}
	p.logger.WarnContext(ctx, "failed to load export", "reason", reason, "error", err)
}

// ProcessDir analyzes every export under dir with at most Workers files in
// flight. Reports are sorted by source path. Per-file errors are collected;
// when ctx is canceled, unstarted files are skipped and ctx.Err() is
// included once.
func (p *Processor) ProcessDir(ctx context.Context, dir string) ([]*report.Report, []error) {
	ctx, span := p.tracer.Start(ctx, tracing.SpanProcessDir)
	defer span.End()
	tracing.SetSourceAttributes(span, dir, "", 0)

	paths, err := p.loader.Discover(dir)
	if err != nil {
		tracing.SetError(span, err)
		return nil, []error{err}
	}

	reports := make([]*report.Report, len(paths))
	errs := make([]error, len(paths))

	p.progress.Start(int64(len(paths)))

	var g errgroup.Group
	g.SetLimit(p.workers)

	canceled := false
	for i, path := range paths {
		if ctx.Err() != nil {
			canceled = true
			break
		}

		g.Go(func() error {
			rep, err := p.ProcessFile(ctx, path)
			if err != nil {
				errs[i] = err
				if !isContextErr(err) {
					p.progress.Error(err)
				}
			} else {
				reports[i] = rep
			}
			p.progress.Increment()
			return nil
		})
	}
	_ = g.Wait()
	p.progress.Finish()

	var done []*report.Report
	var failed []error
	for i := range paths {
		switch {
		case reports[i] != nil:
			done = append(done, reports[i])
		case errs[i] != nil && !isContextErr(errs[i]):
			failed = append(failed, errs[i])
		case errs[i] != nil:
			canceled = true
		}
	}
	if canceled {
		failed = append(failed, ctx.Err())
	}
	tracing.SetBatchAttributes(span, len(paths), len(failed))

	p.logger.Info("directory processed",
		"dir", dir,
		"files", len(paths),
		"reports", len(done),
		"errors", len(failed),
	)

	return done, failed
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
