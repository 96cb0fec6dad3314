package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// SourceKey is the context key for the export path being analyzed.
	SourceKey contextKey = "source"

	// AnalysisIDKey is the context key for the report identifier.
	AnalysisIDKey contextKey = "analysis_id"

	// ComponentKey is the context key for the emitting component.
	ComponentKey contextKey = "component"
)

// WithSource adds the export path to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the export path from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// WithAnalysisID adds a report identifier to the context.
func WithAnalysisID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, AnalysisIDKey, id)
}

// GetAnalysisID retrieves the report identifier from the context.
func GetAnalysisID(ctx context.Context) string {
	if id, ok := ctx.Value(AnalysisIDKey).(string); ok {
		return id
	}
	return ""
}

// WithComponent adds a component name to the context.
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, ComponentKey, component)
}

// GetComponent retrieves the component name from the context.
func GetComponent(ctx context.Context) string {
	if component, ok := ctx.Value(ComponentKey).(string); ok {
		return component
	}
	return ""
}

// extractContextFields returns key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if component := GetComponent(ctx); component != "" {
		fields = append(fields, "component", component)
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, "source", source)
	}
	if id := GetAnalysisID(ctx); id != "" {
		fields = append(fields, "analysis_id", id)
	}

	return fields
}
