// Package processing runs chat exports through the full chatlens pipeline:
// load, analyze, build a report, store it in history, record metrics and
// trace each step.
//
// # Basic Usage
//
//	p := processing.NewProcessor(processing.Options{
//		Analyzer:  analysis.New(analysis.WithStatusTexts(cfg.Analyzer.Texts())),
//		Loader:    loader.New(loaderCfg),
//		Storage:   store,     // optional
//		Collector: collector, // optional
//		Tracer:    tracer,    // optional
//		Logger:    logger,
//		Workers:   cfg.Processing.Workers,
//	})
//
//	rep, err := p.ProcessFile(ctx, "chat.json")
//
//	reports, errs := p.ProcessDir(ctx, "exports/")
//
// ProcessDir bounds concurrency with golang.org/x/sync/errgroup. A file that
// fails does not stop the others; its error is returned alongside the
// successful reports, which are sorted by source path.
//
// With a Tracer, ProcessDir opens a chatlens.process_dir span and every file
// gets a chatlens.process_file child carrying its source, size and status.
//
// # Status tracking
//
// StatusTracker remembers the last status of each source and reports
// transitions such as in_progress -> completed. Watch mode uses it to log
// changes and to drive the dialog_status gauge.
package processing
