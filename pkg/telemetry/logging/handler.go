package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// handler decorates records with the chatlens context fields and the
// active trace before redacting them. Because redaction happens here,
// loggers obtained through Logger.Slog and slog.Default are covered too.
type handler struct {
	next     slog.Handler
	redactor *Redactor
}

// newHandler wraps next. An already wrapped handler is reused when no new
// redactor is asked for, so fields are not added twice.
func newHandler(next slog.Handler, redactor *Redactor) *handler {
	if h, ok := next.(*handler); ok && redactor == nil {
		return h
	}
	return &handler{next: next, redactor: redactor}
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)

	out.AddAttrs(contextAttrs(ctx)...)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redact(a)
	}
	return &handler{next: h.next.WithAttrs(redacted), redactor: h.redactor}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{next: h.next.WithGroup(name), redactor: h.redactor}
}

func (h *handler) redact(a slog.Attr) slog.Attr {
	if h.redactor == nil {
		return a
	}
	return h.redactor.RedactAttr(a)
}

// contextAttrs returns the fields stored by WithSource, WithAnalysisID and
// WithComponent plus the ids of a recording span.
func contextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	fields := extractContextFields(ctx)
	for i := 0; i+1 < len(fields); i += 2 {
		attrs = append(attrs, slog.Any(fields[i].(string), fields[i+1]))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return attrs
}
