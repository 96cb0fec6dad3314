package analysis

import "mercator-hq/chatlens/pkg/chat"

// RequestAnalyzer counts request records and selects the last one.
type RequestAnalyzer interface {
	// RequestsCount returns len(doc.requests), or 0 when the document is
	// invalid or requests is not a sequence.
	RequestsCount(doc any) int

	// LastRequest returns the final element of doc.requests. It reports false
	// when there are no requests or the final element is not an object.
	LastRequest(doc any) (chat.Record, bool)
}

// RequestRecordAnalyzer is the default RequestAnalyzer.
type RequestRecordAnalyzer struct {
	validator Validator
}

// NewRequestAnalyzer creates a RequestAnalyzer backed by validator.
func NewRequestAnalyzer(validator Validator) *RequestRecordAnalyzer {
	return &RequestRecordAnalyzer{validator: validator}
}

// RequestsCount implements RequestAnalyzer.
func (a *RequestRecordAnalyzer) RequestsCount(doc any) int {
	if !a.validator.IsValidDocument(doc) {
		return 0
	}
	requests, ok := requestsOf(doc)
	if !ok {
		return 0
	}
	return len(requests)
}

// LastRequest implements RequestAnalyzer.
func (a *RequestRecordAnalyzer) LastRequest(doc any) (chat.Record, bool) {
	if !a.validator.HasRequests(doc) {
		return nil, false
	}
	requests, ok := requestsOf(doc)
	if !ok || len(requests) == 0 {
		return nil, false
	}
	return chat.AsRecord(requests[len(requests)-1])
}

func requestsOf(doc any) ([]any, bool) {
	d, ok := chat.AsDocument(doc)
	if !ok {
		return nil, false
	}
	return d.Requests()
}

var _ RequestAnalyzer = (*RequestRecordAnalyzer)(nil)
