package logging

import (
	"log/slog"
	"strings"
	"testing"

	"mercator-hq/chatlens/pkg/config"
)

func TestRedactor_RedactString(t *testing.T) {
	r := NewRedactor(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"api key", "key sk-abc123", "key sk-***"},
		{"github token", "ghp_abcdef123", "sk-***"},
		{"email", "contact alice@example.com", "contact ***@example.com"},
		{"bearer", "Authorization: Bearer abc.def", "Authorization: Bearer ***"},
		{"password", "password=hunter2", "password: ***"},
		{"plain", "nothing to hide", "nothing to hide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RedactString(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRedactor_RedactAttr(t *testing.T) {
	r := NewRedactor(nil)

	tests := []struct {
		attr slog.Attr
		want string
	}{
		{slog.String("requester", "alice"), "a***"},
		{slog.String("token", "abc"), "***"},
		{slog.Int("api_key", 42), "***"},
		{slog.Int("count", 3), "3"},
		{slog.String("status", "completed"), "completed"},
		{slog.String("note", "mail bob@corp.io"), "mail ***@corp.io"},
	}

	for _, tt := range tests {
		t.Run(tt.attr.Key, func(t *testing.T) {
			got := r.RedactAttr(tt.attr)
			if got.Key != tt.attr.Key || got.Value.String() != tt.want {
				t.Errorf("expected %s=%s, got %s", tt.attr.Key, tt.want, got)
			}
		})
	}
}

func TestRedactor_RedactAttr_Group(t *testing.T) {
	r := NewRedactor(nil)

	got := r.RedactAttr(slog.Group("users", slog.String("requester", "alice"), slog.String("responder", "bob")))
	attrs := got.Value.Group()
	if len(attrs) != 2 || attrs[0].Value.String() != "a***" || attrs[1].Value.String() != "b***" {
		t.Errorf("expected grouped usernames redacted, got %v", attrs)
	}
}

func TestRedactUsername(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"alice", "a***"},
		{"Ёжик", "Ё***"},
		{"bob@corp.io", "b***@corp.io"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RedactUsername(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRedactor_CustomPatterns(t *testing.T) {
	r := NewRedactor([]config.RedactPattern{
		{Name: "ticket", Pattern: `TICKET-\d+`, Replacement: "TICKET-***"},
		{Name: "broken", Pattern: `(`, Replacement: "x"},
	})

	got := r.RedactString("see TICKET-1234")
	if !strings.Contains(got, "TICKET-***") {
		t.Errorf("expected custom pattern to apply, got %q", got)
	}
}
