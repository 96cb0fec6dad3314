// Package fixtures builds chat export documents for tests.
package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Request builds a single request record.
type Request map[string]any

// NewRequest returns a request record with the given id.
func NewRequest(id string) Request {
	return Request{"requestId": id}
}

// Completed marks the request as answered with an empty followups list.
func (r Request) Completed() Request {
	r["followups"] = []any{}
	r["result"] = map[string]any{"timings": map[string]any{"totalElapsed": 1200}}
	return r
}

// Canceled marks the request as canceled.
func (r Request) Canceled() Request {
	r["isCanceled"] = true
	return r
}

// WithFollowups sets the followups list.
func (r Request) WithFollowups(followups ...any) Request {
	if followups == nil {
		followups = []any{}
	}
	r["followups"] = followups
	return r
}

// With sets an arbitrary field.
func (r Request) With(key string, value any) Request {
	r[key] = value
	return r
}

// Chat builds a chat export.
type Chat map[string]any

// NewChat returns an export with both participants and no requests key.
func NewChat(requester, responder string) Chat {
	c := Chat{}
	if requester != "" {
		c["requesterUsername"] = requester
	}
	if responder != "" {
		c["responderUsername"] = responder
	}
	return c
}

// WithRequests sets the requests list.
func (c Chat) WithRequests(requests ...Request) Chat {
	list := make([]any, len(requests))
	for i, r := range requests {
		list[i] = map[string]any(r)
	}
	c["requests"] = list
	return c
}

// With sets an arbitrary field.
func (c Chat) With(key string, value any) Chat {
	c[key] = value
	return c
}

// Map returns the export as a plain map, the shape json.Unmarshal produces.
func (c Chat) Map() map[string]any {
	return map[string]any(c)
}

// JSON encodes the export.
func (c Chat) JSON(t testing.TB) []byte {
	t.Helper()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return data
}

// WriteFile writes the export as JSON under dir and returns its path.
func (c Chat) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, c.JSON(t), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// CompletedChat is a two-request dialog whose last request finished.
func CompletedChat() Chat {
	return NewChat("alice", "GitHub Copilot").WithRequests(
		NewRequest("request_1").WithFollowups(map[string]any{"message": "Explain more"}),
		NewRequest("request_2").Completed(),
	)
}

// CanceledChat is a dialog whose last request was canceled.
func CanceledChat() Chat {
	return NewChat("bob", "GitHub Copilot").WithRequests(
		NewRequest("request_1").Completed(),
		NewRequest("request_2").Canceled(),
	)
}

// InProgressChat is a dialog whose last request has no followups yet.
func InProgressChat() Chat {
	return NewChat("carol", "GitHub Copilot").WithRequests(
		NewRequest("request_1"),
	)
}

// EmptyChat has participants but an empty requests list.
func EmptyChat() Chat {
	return NewChat("dave", "GitHub Copilot").WithRequests()
}
