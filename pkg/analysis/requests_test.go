package analysis

import "testing"

func TestRequestRecordAnalyzer_RequestsCount(t *testing.T) {
	a := NewRequestAnalyzer(NewValidator())

	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"null", `null`, 0},
		{"primitive", `true`, 0},
		{"missing", `{}`, 0},
		{"not a sequence", `{"requests": {"a": 1}}`, 0},
		{"empty", `{"requests": []}`, 0},
		{"three", `{"requests": [{}, {}, {}]}`, 3},
		{"mixed elements", `{"requests": [{}, null, 3]}`, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.RequestsCount(decode(t, tt.doc)); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRequestRecordAnalyzer_LastRequest(t *testing.T) {
	a := NewRequestAnalyzer(NewValidator())

	tests := []struct {
		name   string
		doc    string
		wantID string
		wantOK bool
	}{
		{"null", `null`, "", false},
		{"no requests", `{"requests": []}`, "", false},
		{"last is not an object", `{"requests": [{"requestId": "a"}, "b"]}`, "", false},
		{"last wins", `{"requests": [{"requestId": "a"}, {"requestId": "b"}]}`, "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last, ok := a.LastRequest(decode(t, tt.doc))
			if ok != tt.wantOK {
				t.Fatalf("expected ok %v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if id, _ := last.String("requestId"); id != tt.wantID {
				t.Errorf("expected request id %q, got %q", tt.wantID, id)
			}
		})
	}
}
