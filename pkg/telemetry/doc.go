// Package telemetry groups the observability packages used by chatlens.
//
//   - logging: structured slog logging with source and analysis IDs in every
//     record, and redaction of configured patterns
//   - metrics: Prometheus counters and histograms for analyses, load errors
//     and history writes
//   - tracing: OpenTelemetry spans around export processing, exported over OTLP
//   - health: liveness, readiness and version endpoints served in watch mode
//
// All four are configured from the telemetry section:
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: text
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9090
//	    path: /metrics
//	    health: true
//	  tracing:
//	    enabled: false
//	    endpoint: localhost:4317
//
// Metrics, tracing and health are off the hot path when disabled: the
// processor skips a nil collector and uses a noop tracer.
package telemetry
