package analysis

import "mercator-hq/chatlens/pkg/chat"

// Validator decides whether a value can be analyzed at all.
type Validator interface {
	// IsValidDocument reports whether doc is a non-nil object.
	IsValidDocument(doc any) bool

	// HasRequests reports whether doc.requests is a non-empty sequence.
	// It must return false, not panic, for non-object input.
	HasRequests(doc any) bool
}

// DocumentValidator is the default Validator.
type DocumentValidator struct{}

// NewValidator creates the default validator.
func NewValidator() *DocumentValidator {
	return &DocumentValidator{}
}

// IsValidDocument implements Validator.
func (v *DocumentValidator) IsValidDocument(doc any) bool {
	_, ok := chat.AsDocument(doc)
	return ok
}

// HasRequests implements Validator.
func (v *DocumentValidator) HasRequests(doc any) bool {
	d, ok := chat.AsDocument(doc)
	if !ok {
		return false
	}
	requests, ok := d.Requests()
	return ok && len(requests) > 0
}

var _ Validator = (*DocumentValidator)(nil)
