package analysis

import "encoding/json"

// Status is the state of a dialog as inferred from its last request.
type Status string

const (
	// StatusCompleted means the assistant finished its last turn with an
	// empty followups list.
	StatusCompleted Status = "completed"
	// StatusCanceled means the last request was canceled.
	StatusCanceled Status = "canceled"
	// StatusInProgress is the conservative default.
	StatusInProgress Status = "in_progress"
)

// ChatUsers holds the two dialog participants. An empty string means the
// participant is absent from the export.
type ChatUsers struct {
	Requester string `json:"requester"`
	Responder string `json:"responder"`
}

// MarshalJSON encodes absent participants as null.
func (u ChatUsers) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Requester *string `json:"requester"`
		Responder *string `json:"responder"`
	}{
		Requester: optional(u.Requester),
		Responder: optional(u.Responder),
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StatusDetails is the expanded form of Status with the facts it was derived
// from.
type StatusDetails struct {
	Status        Status `json:"status"`
	StatusText    string `json:"statusText"`
	HasResult     bool   `json:"hasResult"`
	HasFollowups  bool   `json:"hasFollowups"`
	IsCanceled    bool   `json:"isCanceled"`
	LastRequestID string `json:"lastRequestId,omitempty"`
}
