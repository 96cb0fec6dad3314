package analysis

import (
	"encoding/json"
	"testing"

	"mercator-hq/chatlens/pkg/chat"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", s, err)
	}
	return v
}

func TestDocumentValidator_IsValidDocument(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		doc  any
		want bool
	}{
		{"nil", nil, false},
		{"string", "chat", false},
		{"number", 42.0, false},
		{"bool", true, false},
		{"array", []any{map[string]any{}}, false},
		{"nil map", map[string]any(nil), false},
		{"empty object", map[string]any{}, true},
		{"document", chat.Document{"requests": []any{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.IsValidDocument(tt.doc); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDocumentValidator_HasRequests(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{"null", `null`, false},
		{"primitive", `"text"`, false},
		{"missing requests", `{}`, false},
		{"null requests", `{"requests": null}`, false},
		{"object requests", `{"requests": {"0": {}}}`, false},
		{"string requests", `{"requests": "abc"}`, false},
		{"empty requests", `{"requests": []}`, false},
		{"one request", `{"requests": [{}]}`, true},
		{"non-object request", `{"requests": [1]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.HasRequests(decode(t, tt.doc)); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
