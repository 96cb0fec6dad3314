package chat

import "reflect"

// Field names recognized in a chat export. Any other key is carried through
// untouched.
const (
	FieldRequesterUsername = "requesterUsername"
	FieldResponderUsername = "responderUsername"
	FieldRequests          = "requests"

	FieldRequestID  = "requestId"
	FieldIsCanceled = "isCanceled"
	FieldFollowups  = "followups"
	FieldResult     = "result"
)

// Document is a decoded chat export. It is an open-ended mapping: the
// analysis code only reads the fields listed above.
type Document map[string]any

// Record is a single request turn inside Document.requests.
type Record map[string]any

// AsDocument reports whether v is an object-shaped value and returns it as a
// Document. nil, primitives, sequences and nil maps are not documents.
func AsDocument(v any) (Document, bool) {
	m, ok := asObject(v)
	return Document(m), ok
}

// AsRecord reports whether v is an object-shaped value and returns it as a
// Record.
func AsRecord(v any) (Record, bool) {
	m, ok := asObject(v)
	return Record(m), ok
}

func asObject(v any) (map[string]any, bool) {
	var m map[string]any
	switch t := v.(type) {
	case map[string]any:
		m = t
	case Document:
		m = t
	case Record:
		m = t
	default:
		return nil, false
	}
	if m == nil {
		return nil, false
	}
	return m, true
}

// Lookup returns the raw value stored under key. The boolean is false when the
// key is missing; a present key holding null returns (nil, true).
func (d Document) Lookup(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// String returns the text value under key, or false when the key is missing or
// not text.
func (d Document) String(key string) (string, bool) {
	return stringField(d, key)
}

// Sequence returns the ordered sequence under key, or false when the key is
// missing or not a sequence.
func (d Document) Sequence(key string) ([]any, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	return Sequence(v)
}

// Requests returns Document.requests when it is a sequence.
func (d Document) Requests() ([]any, bool) {
	return d.Sequence(FieldRequests)
}

// Lookup returns the raw value stored under key.
func (r Record) Lookup(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// Has reports whether key is present, whatever its value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the text value under key.
func (r Record) String(key string) (string, bool) {
	return stringField(r, key)
}

// Bool returns the boolean value under key. Truthy non-boolean values such as
// 1 or "true" are not booleans.
func (r Record) Bool(key string) (bool, bool) {
	v, ok := r[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Sequence returns the ordered sequence under key.
func (r Record) Sequence(key string) ([]any, bool) {
	v, ok := r[key]
	if !ok {
		return nil, false
	}
	return Sequence(v)
}

// IsNull reports whether key is present and holds null.
func (r Record) IsNull(key string) bool {
	v, ok := r[key]
	return ok && v == nil
}

// Sequence converts v to []any when it is an ordered sequence. Decoded JSON
// produces []any; typed slices built in Go code are accepted as well. A nil
// slice is an empty sequence.
func Sequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case []any:
		return t, true
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	case []Record:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
