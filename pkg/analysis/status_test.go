package analysis

import "testing"

func TestDialogStatusAnalyzer_DialogStatus(t *testing.T) {
	v := NewValidator()
	a := NewStatusAnalyzer(v, NewRequestAnalyzer(v))

	tests := []struct {
		name string
		doc  string
		want Status
	}{
		{"null", `null`, StatusInProgress},
		{"no requests key", `{}`, StatusInProgress},
		{"empty requests", `{"requests": []}`, StatusInProgress},
		{"last not an object", `{"requests": [7]}`, StatusInProgress},
		{"empty followups", `{"requests": [{"followups": []}]}`, StatusCompleted},
		{"canceled", `{"requests": [{"isCanceled": true}]}`, StatusCanceled},
		{"canceled beats empty followups", `{"requests": [{"isCanceled": true, "followups": []}]}`, StatusCanceled},
		{"isCanceled false", `{"requests": [{"isCanceled": false, "followups": []}]}`, StatusCompleted},
		{"isCanceled truthy string", `{"requests": [{"isCanceled": "true"}]}`, StatusInProgress},
		{"isCanceled truthy number", `{"requests": [{"isCanceled": 1, "followups": []}]}`, StatusCompleted},
		{"missing followups", `{"requests": [{"requestId": "r1"}]}`, StatusInProgress},
		{"non-empty followups", `{"requests": [{"followups": [{"message": "next"}]}]}`, StatusInProgress},
		{"string followups", `{"requests": [{"followups": "x"}]}`, StatusInProgress},
		{"null followups", `{"requests": [{"followups": null}]}`, StatusInProgress},
		{"object followups", `{"requests": [{"followups": {}}]}`, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.DialogStatus(decode(t, tt.doc)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDialogStatusAnalyzer_OnlyLastRequestMatters(t *testing.T) {
	v := NewValidator()
	a := NewStatusAnalyzer(v, NewRequestAnalyzer(v))

	last := `{"requestId": "last", "followups": []}`
	prefixes := []string{
		``,
		`{"isCanceled": true},`,
		`{"followups": [1, 2]}, {"isCanceled": true},`,
		`null, "junk", 3,`,
	}

	for _, prefix := range prefixes {
		doc := decode(t, `{"requests": [`+prefix+last+`]}`)
		if got := a.DialogStatus(doc); got != StatusCompleted {
			t.Errorf("prefix %q: expected %q, got %q", prefix, StatusCompleted, got)
		}
	}
}

func TestDialogStatusAnalyzer_DialogStatusDetails(t *testing.T) {
	v := NewValidator()
	a := NewStatusAnalyzer(v, NewRequestAnalyzer(v))

	tests := []struct {
		name string
		doc  string
		want StatusDetails
	}{
		{
			name: "empty object",
			doc:  `{}`,
			want: StatusDetails{Status: StatusInProgress, StatusText: DefaultStatusTexts.NoRequests},
		},
		{
			name: "null document",
			doc:  `null`,
			want: StatusDetails{Status: StatusInProgress, StatusText: DefaultStatusTexts.NoRequests},
		},
		{
			name: "completed with result",
			doc:  `{"requests": [{"requestId": "req-123", "followups": [], "result": "r"}]}`,
			want: StatusDetails{
				Status:        StatusCompleted,
				StatusText:    DefaultStatusTexts.Completed,
				HasResult:     true,
				HasFollowups:  true,
				LastRequestID: "req-123",
			},
		},
		{
			name: "canceled with null result",
			doc:  `{"requests": [{"requestId": "req-9", "isCanceled": true, "result": null}]}`,
			want: StatusDetails{
				Status:        StatusCanceled,
				StatusText:    DefaultStatusTexts.Canceled,
				IsCanceled:    true,
				LastRequestID: "req-9",
			},
		},
		{
			name: "in progress with followups",
			doc:  `{"requests": [{"followups": ["more"]}]}`,
			want: StatusDetails{
				Status:       StatusInProgress,
				StatusText:   DefaultStatusTexts.InProgress,
				HasFollowups: true,
			},
		},
		{
			name: "last request not an object",
			doc:  `{"requests": [{"requestId": "a"}, false]}`,
			want: StatusDetails{Status: StatusInProgress, StatusText: DefaultStatusTexts.InProgress},
		},
		{
			name: "non-text request id",
			doc:  `{"requests": [{"requestId": 5, "followups": []}]}`,
			want: StatusDetails{
				Status:       StatusCompleted,
				StatusText:   DefaultStatusTexts.Completed,
				HasFollowups: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.DialogStatusDetails(decode(t, tt.doc)); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestStatusTextsFor(t *testing.T) {
	tests := []struct {
		locale string
		want   string
		wantOK bool
	}{
		{"en", "Dialog completed successfully", true},
		{"EN-us", "Dialog completed successfully", true},
		{"ru", "Диалог завершен успешно", true},
		{"ru_RU", "Диалог завершен успешно", true},
		{"de", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			texts, ok := StatusTextsFor(tt.locale)
			if ok != tt.wantOK {
				t.Fatalf("expected ok %v, got %v", tt.wantOK, ok)
			}
			if texts.Completed != tt.want {
				t.Errorf("expected %q, got %q", tt.want, texts.Completed)
			}
		})
	}
}

func TestStatusTexts_Merge(t *testing.T) {
	merged := DefaultStatusTexts.Merge(StatusTexts{InProgress: "working"})

	if merged.InProgress != "working" {
		t.Errorf("expected override %q, got %q", "working", merged.InProgress)
	}
	if merged.Completed != DefaultStatusTexts.Completed {
		t.Errorf("expected default %q, got %q", DefaultStatusTexts.Completed, merged.Completed)
	}
	if merged.Text(StatusCanceled) != DefaultStatusTexts.Canceled {
		t.Errorf("expected %q, got %q", DefaultStatusTexts.Canceled, merged.Text(StatusCanceled))
	}
}
