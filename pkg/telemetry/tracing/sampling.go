package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Values of telemetry.tracing.sampler.
const (
	SamplerAlways = "always"
	SamplerNever  = "never"
	SamplerRatio  = "ratio" // keep sample_ratio of traces, by trace id
)

// createSampler returns the root sampler for name wrapped in ParentBased:
// the decision is taken once per directory scan or file and inherited by
// every span below it.
func createSampler(name string, ratio float64) (sdktrace.Sampler, error) {
	root, err := rootSampler(name, ratio)
	if err != nil {
		return nil, err
	}
	return sdktrace.ParentBased(root), nil
}

func rootSampler(name string, ratio float64) (sdktrace.Sampler, error) {
	switch name {
	case SamplerAlways:
		return sdktrace.AlwaysSample(), nil
	case SamplerNever:
		return sdktrace.NeverSample(), nil
	case SamplerRatio:
		if ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("tracing sample ratio %g is outside [0, 1]", ratio)
		}
		return sdktrace.TraceIDRatioBased(ratio), nil
	}
	return nil, fmt.Errorf("unknown tracing sampler %q (want %s, %s or %s)", name, SamplerAlways, SamplerNever, SamplerRatio)
}
