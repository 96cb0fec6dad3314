// Package tracing provides OpenTelemetry tracing for chatlens.
//
// # Overview
//
// Each processed export gets a span; a directory scan gets a parent span
// with one child per file:
//
//	chatlens.process_dir      chatlens.source=chats/ chatlens.files=3
//	├── chatlens.process_file chatlens.source=chats/a.json chatlens.status=completed
//	├── chatlens.process_file chatlens.source=chats/b.json chatlens.status=canceled
//	└── chatlens.process_file chatlens.source=chats/c.json (error)
//
// Spans are exported over OTLP gRPC. When tracing is disabled, New returns a
// noop tracer and span creation costs close to nothing.
//
// # Sampling
//
//   - always: sample every trace
//   - never: sample no trace
//   - ratio: sample sample_ratio of traces by trace ID
//
// Samplers are parent based, so a file span follows its directory span.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    sampler: ratio
//	    sample_ratio: 0.1
//	    endpoint: localhost:4317
//	    service_name: chatlens
//	    otlp:
//	      insecure: true
//	      timeout: 10s
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, tracing.SpanProcessFile)
//	defer span.End()
//	tracing.SetSourceAttributes(span, path, "json", size)
//
// Tests record spans with tracetest.SpanRecorder and NewWithProvider.
package tracing
