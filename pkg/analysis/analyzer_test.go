package analysis

import (
	"reflect"
	"sync"
	"testing"

	"mercator-hq/chatlens/internal/fixtures"
	"mercator-hq/chatlens/pkg/chat"
)

func TestAnalyzer_NonObjectInputs(t *testing.T) {
	a := New()
	inputs := []any{nil, "chat", 3.14, false, []any{1, 2}}

	for _, doc := range inputs {
		if name, ok := a.Analyze(doc); ok || name != "" {
			t.Errorf("%#v: expected absent requester, got %q", doc, name)
		}
		if users := a.ChatUsers(doc); users != (ChatUsers{}) {
			t.Errorf("%#v: expected absent users, got %+v", doc, users)
		}
		if count := a.RequestsCount(doc); count != 0 {
			t.Errorf("%#v: expected 0 requests, got %d", doc, count)
		}
		if status := a.DialogStatus(doc); status != StatusInProgress {
			t.Errorf("%#v: expected %q, got %q", doc, StatusInProgress, status)
		}
		want := StatusDetails{Status: StatusInProgress, StatusText: DefaultStatusTexts.NoRequests}
		if details := a.DialogStatusDetails(doc); details != want {
			t.Errorf("%#v: expected %+v, got %+v", doc, want, details)
		}
	}
}

func TestAnalyzer_Fixtures(t *testing.T) {
	a := New()

	tests := []struct {
		name      string
		doc       fixtures.Chat
		requester string
		count     int
		status    Status
	}{
		{"completed", fixtures.CompletedChat(), "alice", 2, StatusCompleted},
		{"canceled", fixtures.CanceledChat(), "bob", 2, StatusCanceled},
		{"in progress", fixtures.InProgressChat(), "carol", 1, StatusInProgress},
		{"empty", fixtures.EmptyChat(), "dave", 0, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decode(t, string(tt.doc.JSON(t)))

			if name, _ := a.Analyze(doc); name != tt.requester {
				t.Errorf("expected requester %q, got %q", tt.requester, name)
			}
			if count := a.RequestsCount(doc); count != tt.count {
				t.Errorf("expected %d requests, got %d", tt.count, count)
			}
			if status := a.DialogStatus(doc); status != tt.status {
				t.Errorf("expected status %q, got %q", tt.status, status)
			}

			// Go-built maps behave the same as decoded JSON.
			if status := a.DialogStatus(tt.doc.Map()); status != tt.status {
				t.Errorf("expected status %q for map input, got %q", tt.status, status)
			}
		})
	}
}

func TestAnalyzer_Idempotent(t *testing.T) {
	a := New()
	doc := decode(t, `{"requesterUsername": "alice", "requests": [{"requestId": "r1", "followups": [], "result": {}}]}`)

	first := a.DialogStatusDetails(doc)
	second := a.DialogStatusDetails(doc)
	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}

	if a.ChatUsers(doc) != a.ChatUsers(doc) {
		t.Error("expected identical users across calls")
	}
}

func TestAnalyzer_DoesNotMutate(t *testing.T) {
	doc := fixtures.CanceledChat().Map()
	before := fixtures.CanceledChat().Map()

	a := New()
	a.ChatUsers(doc)
	a.RequestsCount(doc)
	a.DialogStatusDetails(doc)

	if !reflect.DeepEqual(doc, before) {
		t.Errorf("expected document to be unchanged, got %+v", doc)
	}
}

func TestAnalyzer_ConcurrentUse(t *testing.T) {
	a := New()
	doc := fixtures.CompletedChat().Map()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if status := a.DialogStatus(doc); status != StatusCompleted {
				t.Errorf("expected %q, got %q", StatusCompleted, status)
			}
		}()
	}
	wg.Wait()
}

type stubValidator struct{ valid bool }

func (s stubValidator) IsValidDocument(doc any) bool { return s.valid }
func (s stubValidator) HasRequests(doc any) bool     { return s.valid }

type stubRequests struct {
	count int
	last  chat.Record
}

func (s stubRequests) RequestsCount(doc any) int { return s.count }
func (s stubRequests) LastRequest(doc any) (chat.Record, bool) {
	return s.last, s.last != nil
}

type stubStatus struct{ status Status }

func (s stubStatus) DialogStatus(doc any) Status { return s.status }
func (s stubStatus) DialogStatusDetails(doc any) StatusDetails {
	return StatusDetails{Status: s.status, StatusText: "stub"}
}

type stubUsers struct{}

func (stubUsers) RequesterUsername(doc any) (string, bool) { return "stub-user", true }
func (stubUsers) ChatUsers(doc any) ChatUsers {
	return ChatUsers{Requester: "stub-user", Responder: "stub-bot"}
}

func TestAnalyzer_WithValidator(t *testing.T) {
	a := New(WithValidator(stubValidator{valid: false}))
	doc := fixtures.CompletedChat().Map()

	if count := a.RequestsCount(doc); count != 0 {
		t.Errorf("expected rejecting validator to yield 0 requests, got %d", count)
	}
	if users := a.ChatUsers(doc); users != (ChatUsers{}) {
		t.Errorf("expected absent users, got %+v", users)
	}
	if status := a.DialogStatus(doc); status != StatusInProgress {
		t.Errorf("expected %q, got %q", StatusInProgress, status)
	}
	if _, ok := a.Validator().(stubValidator); !ok {
		t.Errorf("expected injected validator, got %T", a.Validator())
	}
}

func TestAnalyzer_WithRequestAnalyzer(t *testing.T) {
	stub := stubRequests{count: 42, last: chat.Record{"isCanceled": true}}
	a := New(WithRequestAnalyzer(stub))

	doc := fixtures.CompletedChat().Map()
	if count := a.RequestsCount(doc); count != 42 {
		t.Errorf("expected 42, got %d", count)
	}
	// The default status analyzer must use the injected request analyzer.
	if status := a.DialogStatus(doc); status != StatusCanceled {
		t.Errorf("expected %q, got %q", StatusCanceled, status)
	}
}

func TestAnalyzer_WithStatusAndUsers(t *testing.T) {
	a := New(
		WithStatusAnalyzer(stubStatus{status: StatusCanceled}),
		WithUserExtractor(stubUsers{}),
	)

	if status := a.DialogStatus(nil); status != StatusCanceled {
		t.Errorf("expected %q, got %q", StatusCanceled, status)
	}
	if details := a.DialogStatusDetails(nil); details.StatusText != "stub" {
		t.Errorf("expected stub text, got %q", details.StatusText)
	}
	if name, ok := a.Analyze(nil); !ok || name != "stub-user" {
		t.Errorf("expected stub-user, got %q (%v)", name, ok)
	}
	if users := a.ChatUsers(nil); users.Responder != "stub-bot" {
		t.Errorf("expected stub-bot, got %q", users.Responder)
	}
}

func TestAnalyzer_WithStatusTexts(t *testing.T) {
	ru, _ := StatusTextsFor("ru")
	a := New(WithStatusTexts(ru))

	details := a.DialogStatusDetails(fixtures.CanceledChat().Map())
	if details.StatusText != ru.Canceled {
		t.Errorf("expected %q, got %q", ru.Canceled, details.StatusText)
	}

	empty := a.DialogStatusDetails(map[string]any{})
	if empty.StatusText != ru.NoRequests {
		t.Errorf("expected %q, got %q", ru.NoRequests, empty.StatusText)
	}
}

func TestFreeFunctions(t *testing.T) {
	doc := decode(t, `{"requesterUsername": "alice", "responderUsername": "bot", "requests": [{"requestId": "req-123", "followups": [], "result": "r"}]}`)

	if name, ok := Analyze(doc); !ok || name != "alice" {
		t.Errorf("expected alice, got %q (%v)", name, ok)
	}
	if users := GetChatUsers(doc); users != (ChatUsers{Requester: "alice", Responder: "bot"}) {
		t.Errorf("unexpected users %+v", users)
	}
	if count := GetRequestsCount(doc); count != 1 {
		t.Errorf("expected 1, got %d", count)
	}
	if status := GetDialogStatus(doc); status != StatusCompleted {
		t.Errorf("expected %q, got %q", StatusCompleted, status)
	}
	details := GetDialogStatusDetails(doc)
	if !details.HasResult || details.LastRequestID != "req-123" {
		t.Errorf("unexpected details %+v", details)
	}

	if users := GetChatUsers(nil); users != (ChatUsers{}) {
		t.Errorf("expected absent users for nil, got %+v", users)
	}
}
