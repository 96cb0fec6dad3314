package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanProcessFile   = "chatlens.process_file"
	SpanProcessReader = "chatlens.process_reader"
	SpanProcessDir    = "chatlens.process_dir"
)

// Attribute keys.
const (
	AttrSource       = "chatlens.source"
	AttrFormat       = "chatlens.format"
	AttrDocumentSize = "chatlens.document_size"
	AttrStatus       = "chatlens.status"
	AttrRequests     = "chatlens.requests"
	AttrRequester    = "chatlens.requester"
	AttrFiles        = "chatlens.files"
	AttrFailed       = "chatlens.failed"
	AttrErrorMessage = "error.message"
)

// SetSourceAttributes records where an export came from.
//
//	SetSourceAttributes(span, "chats/a.json", "json", 2048)
func SetSourceAttributes(span trace.Span, source, format string, size int64) {
	attrs := []attribute.KeyValue{attribute.String(AttrSource, source)}
	if format != "" {
		attrs = append(attrs, attribute.String(AttrFormat, format))
	}
	if size > 0 {
		attrs = append(attrs, attribute.Int64(AttrDocumentSize, size))
	}
	span.SetAttributes(attrs...)
}

// SetReportAttributes records the analysis outcome. The requester is only
// set when known.
func SetReportAttributes(span trace.Span, status string, requests int, requester string) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrStatus, status),
		attribute.Int(AttrRequests, requests),
	}
	if requester != "" {
		attrs = append(attrs, attribute.String(AttrRequester, requester))
	}
	span.SetAttributes(attrs...)
}

// SetBatchAttributes records a directory scan outcome.
func SetBatchAttributes(span trace.Span, files, failed int) {
	span.SetAttributes(
		attribute.Int(AttrFiles, files),
		attribute.Int(AttrFailed, failed),
	)
}
