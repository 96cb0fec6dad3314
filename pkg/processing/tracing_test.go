package processing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mercator-hq/chatlens/internal/fixtures"
	"mercator-hq/chatlens/pkg/telemetry/tracing"
)

func recordingTracer(t *testing.T) (*tracing.Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tracer := tracing.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestProcessor_ProcessFile_Span(t *testing.T) {
	tracer, sr := recordingTracer(t)
	p := newTestProcessor(t, Options{Tracer: tracer})
	path := fixtures.CompletedChat().WriteFile(t, t.TempDir(), "chat.json")

	if _, err := p.ProcessFile(context.Background(), path); err != nil {
		t.Fatalf("ProcessFile() failed: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != tracing.SpanProcessFile {
		t.Errorf("expected span %q, got %q", tracing.SpanProcessFile, span.Name())
	}
	if span.Status().Code != codes.Ok {
		t.Errorf("expected Ok status, got %v", span.Status())
	}
	if v, ok := spanAttr(span, tracing.AttrSource); !ok || v.AsString() != path {
		t.Errorf("expected source %q, got %v", path, v.Emit())
	}
	if v, ok := spanAttr(span, tracing.AttrStatus); !ok || v.AsString() != "completed" {
		t.Errorf("expected status completed, got %v", v.Emit())
	}
	if v, ok := spanAttr(span, tracing.AttrRequests); !ok || v.AsInt64() != 2 {
		t.Errorf("expected 2 requests, got %v", v.Emit())
	}
	if v, ok := spanAttr(span, tracing.AttrDocumentSize); !ok || v.AsInt64() <= 0 {
		t.Errorf("expected a document size, got %v", v.Emit())
	}
}

func TestProcessor_ProcessFile_ErrorSpan(t *testing.T) {
	tracer, sr := recordingTracer(t)
	p := newTestProcessor(t, Options{Tracer: tracer})
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := p.ProcessFile(context.Background(), bad); err == nil {
		t.Fatal("expected an error")
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected Error status, got %v", spans[0].Status())
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

func TestProcessor_ProcessDir_Spans(t *testing.T) {
	tracer, sr := recordingTracer(t)
	p := newTestProcessor(t, Options{Tracer: tracer})
	dir := t.TempDir()
	fixtures.CompletedChat().WriteFile(t, dir, "a.json")
	fixtures.CanceledChat().WriteFile(t, dir, "b.json")

	if _, errs := p.ProcessDir(context.Background(), dir); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	spans := sr.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}

	var root sdktrace.ReadOnlySpan
	for _, s := range spans {
		if s.Name() == tracing.SpanProcessDir {
			root = s
		}
	}
	if root == nil {
		t.Fatal("expected a directory span")
	}
	if v, _ := spanAttr(root, tracing.AttrFiles); v.AsInt64() != 2 {
		t.Errorf("expected 2 files, got %v", v.Emit())
	}

	for _, s := range spans {
		if s.Name() != tracing.SpanProcessFile {
			continue
		}
		if s.Parent().SpanID() != root.SpanContext().SpanID() {
			t.Errorf("expected file span %v to be a child of the directory span", s.Name())
		}
	}
}
