package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercator-hq/chatlens/pkg/config"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestNew(t *testing.T) {
	otlp := config.OTLPConfig{Insecure: true, Timeout: time.Second}

	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{name: "nil config", config: nil, wantErr: true},
		{name: "disabled", config: &config.TracingConfig{ServiceName: "chatlens"}},
		{
			name: "always sampler",
			config: &config.TracingConfig{
				Enabled: true, Sampler: SamplerAlways, Endpoint: "localhost:4317",
				ServiceName: "chatlens", OTLP: otlp,
			},
			wantEnabled: true,
		},
		{
			name: "ratio sampler",
			config: &config.TracingConfig{
				Enabled: true, Sampler: SamplerRatio, SampleRatio: 0.25, Endpoint: "localhost:4317",
				ServiceName: "chatlens", OTLP: otlp,
			},
			wantEnabled: true,
		},
		{
			name: "bad sampler",
			config: &config.TracingConfig{
				Enabled: true, Sampler: "sometimes", Endpoint: "localhost:4317", OTLP: otlp,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = tracer.Shutdown(ctx)
			}()

			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func TestNew_WithExporter(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	cfg := &config.TracingConfig{Enabled: true, Sampler: SamplerAlways, ServiceName: "chatlens"}

	tracer, err := New(cfg, WithExporter(exp), WithServiceVersion("1.2.3"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	defer func() { _ = tracer.Shutdown(context.Background()) }()

	_, span := tracer.Start(context.Background(), SpanProcessFile)
	span.End()
	if err := tracer.ForceFlush(context.Background()); err != nil {
		t.Fatalf("ForceFlush() failed: %v", err)
	}

	// Shutdown resets the in-memory exporter, so read before it.
	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 exported span, got %d", len(spans))
	}
	res := map[string]string{}
	for _, kv := range spans[0].Resource.Attributes() {
		res[string(kv.Key)] = kv.Value.Emit()
	}
	if res["service.name"] != "chatlens" || res["service.version"] != "1.2.3" {
		t.Errorf("unexpected resource %v", res)
	}
}

func TestNoop(t *testing.T) {
	tracer := Noop()

	ctx, span := tracer.Start(context.Background(), "noop")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("expected an invalid span context from the noop tracer")
	}
	if trace.SpanContextFromContext(ctx).IsValid() {
		t.Error("expected no span context from the noop tracer")
	}
	if err := tracer.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush() failed: %v", err)
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

func TestTracer_StartNested(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	defer tracer.Shutdown(context.Background())

	ctx, parent := tracer.Start(context.Background(), "parent")
	if !trace.SpanContextFromContext(ctx).IsValid() {
		t.Error("expected a span context inside a span")
	}
	_, child := tracer.Start(ctx, "child")
	child.End()
	parent.End()

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("expected child to reference the parent span")
	}
	if spans[0].SpanContext().TraceID() != spans[1].SpanContext().TraceID() {
		t.Error("expected both spans to share a trace")
	}
}

func TestSetStatus(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	defer tracer.Shutdown(context.Background())

	_, ok := tracer.Start(context.Background(), "ok")
	SetStatus(ok, nil)
	ok.End()

	_, failed := tracer.Start(context.Background(), "failed")
	SetStatus(failed, errors.New("boom"))
	failed.End()

	spans := sr.Ended()
	if spans[0].Status().Code != codes.Ok {
		t.Errorf("expected Ok, got %v", spans[0].Status())
	}
	if spans[1].Status().Code != codes.Error || spans[1].Status().Description != "boom" {
		t.Errorf("expected Error boom, got %v", spans[1].Status())
	}
	if len(spans[1].Events()) != 1 {
		t.Errorf("expected one exception event, got %d", len(spans[1].Events()))
	}
}

func TestSetSourceAttributes(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	defer tracer.Shutdown(context.Background())

	_, span := tracer.Start(context.Background(), "source")
	SetSourceAttributes(span, "-", "", 0)
	SetReportAttributes(span, "canceled", 3, "")
	span.End()

	attrs := map[string]bool{}
	for _, kv := range sr.Ended()[0].Attributes() {
		attrs[string(kv.Key)] = true
	}
	for _, key := range []string{AttrSource, AttrStatus, AttrRequests} {
		if !attrs[key] {
			t.Errorf("expected attribute %q", key)
		}
	}
	for _, key := range []string{AttrFormat, AttrDocumentSize, AttrRequester} {
		if attrs[key] {
			t.Errorf("expected attribute %q to be omitted", key)
		}
	}
}
