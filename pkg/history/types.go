package history

import (
	"context"
	"time"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/report"
)

const (
	// MaxLimit is the maximum number of records a single query may return.
	MaxLimit = 10000

	// SortAsc returns the oldest records first.
	SortAsc = "asc"
	// SortDesc returns the newest records first. It is the default.
	SortDesc = "desc"
)

// Record is the stored form of a report.
type Record struct {
	ID            string          `json:"id"`
	Source        string          `json:"source"`
	AnalyzedAt    time.Time       `json:"analyzedAt"`
	Requester     string          `json:"requester"`
	Responder     string          `json:"responder"`
	RequestsCount int             `json:"requestsCount"`
	Status        analysis.Status `json:"status"`
	StatusText    string          `json:"statusText"`
	HasResult     bool            `json:"hasResult"`
	HasFollowups  bool            `json:"hasFollowups"`
	IsCanceled    bool            `json:"isCanceled"`
	LastRequestID string          `json:"lastRequestId,omitempty"`
}

// FromReport flattens a report into a Record.
func FromReport(r *report.Report) *Record {
	return &Record{
		ID:            r.ID,
		Source:        r.Source,
		AnalyzedAt:    r.AnalyzedAt.UTC(),
		Requester:     r.Users.Requester,
		Responder:     r.Users.Responder,
		RequestsCount: r.RequestsCount,
		Status:        r.Status.Status,
		StatusText:    r.Status.StatusText,
		HasResult:     r.Status.HasResult,
		HasFollowups:  r.Status.HasFollowups,
		IsCanceled:    r.Status.IsCanceled,
		LastRequestID: r.Status.LastRequestID,
	}
}

// Report rebuilds the report the record was stored from.
func (r *Record) Report() *report.Report {
	return &report.Report{
		ID:         r.ID,
		Source:     r.Source,
		AnalyzedAt: r.AnalyzedAt,
		Users: analysis.ChatUsers{
			Requester: r.Requester,
			Responder: r.Responder,
		},
		RequestsCount: r.RequestsCount,
		Status: analysis.StatusDetails{
			Status:        r.Status,
			StatusText:    r.StatusText,
			HasResult:     r.HasResult,
			HasFollowups:  r.HasFollowups,
			IsCanceled:    r.IsCanceled,
			LastRequestID: r.LastRequestID,
		},
	}
}

// Query filters stored records. Zero values match everything.
type Query struct {
	// Filters
	IDs       []string        `json:"ids,omitempty"`
	Source    string          `json:"source,omitempty"`
	Status    analysis.Status `json:"status,omitempty"`
	Requester string          `json:"requester,omitempty"`

	// Time range, both ends inclusive.
	Since time.Time `json:"since,omitempty"`
	Until time.Time `json:"until,omitempty"`

	// Pagination. Limit 0 returns every match.
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// SortOrder orders by analysis time: "asc" or "desc".
	SortOrder string `json:"sort_order,omitempty"`
}

// Validate reports the first invalid parameter.
func (q *Query) Validate() error {
	if q.Limit < 0 {
		return queryError("limit", "must be >= 0, got %d", q.Limit)
	}
	if q.Limit > MaxLimit {
		return queryError("limit", "must be <= %d, got %d", MaxLimit, q.Limit)
	}
	if q.Offset < 0 {
		return queryError("offset", "must be >= 0, got %d", q.Offset)
	}

	switch q.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return queryError("sort_order", "must be %q or %q, got %q", SortAsc, SortDesc, q.SortOrder)
	}

	switch q.Status {
	case "", analysis.StatusCompleted, analysis.StatusCanceled, analysis.StatusInProgress:
	default:
		return queryError("status", "is unknown: %q", q.Status)
	}

	if !q.Since.IsZero() && !q.Until.IsZero() && q.Since.After(q.Until) {
		return queryError("since", "must be before until")
	}

	return nil
}

func (q *Query) ascending() bool {
	return q.SortOrder == SortAsc
}

// Storage defines the interface for history backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a record. A record with an existing ID replaces it.
	Store(ctx context.Context, record *Record) error

	// Query returns records matching the query, ordered by analysis time.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query filters.
	// Pagination is ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the query filters and returns how many
	// were removed. Pagination is ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Latest returns the most recent record for source, or ErrNotFound.
	Latest(ctx context.Context, source string) (*Record, error)

	// Close releases resources held by the backend.
	Close() error
}
