package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"mercator-hq/chatlens/pkg/analysis"
)

// Report is the analysis of one chat export.
type Report struct {
	// ID is a UUID v4 assigned when the report is built.
	ID string `json:"id"`

	// Source is the export path, or "-" for standard input.
	Source string `json:"source"`

	// AnalyzedAt is when the analysis ran.
	AnalyzedAt time.Time `json:"analyzedAt"`

	// Users holds the participants; absent ones encode as null.
	Users analysis.ChatUsers `json:"users"`

	// RequestsCount is the number of request records.
	RequestsCount int `json:"requestsCount"`

	// Status is the dialog status with the facts it was derived from.
	Status analysis.StatusDetails `json:"status"`
}

// Build analyzes doc and returns its report.
func Build(a *analysis.Analyzer, source string, doc any, now time.Time) *Report {
	return &Report{
		ID:            uuid.NewString(),
		Source:        source,
		AnalyzedAt:    now.UTC(),
		Users:         a.ChatUsers(doc),
		RequestsCount: a.RequestsCount(doc),
		Status:        a.DialogStatusDetails(doc),
	}
}

// RenderText writes a human-readable summary.
func (r *Report) RenderText(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("Source:     %s\n", r.Source)
	ew.printf("Requester:  %s\n", orUnknown(r.Users.Requester))
	ew.printf("Responder:  %s\n", orUnknown(r.Users.Responder))
	ew.printf("Requests:   %s\n", humanize.Comma(int64(r.RequestsCount)))
	ew.printf("Status:     %s (%s)\n", r.Status.Status, r.Status.StatusText)
	if r.Status.LastRequestID != "" {
		ew.printf("Last:       %s\n", r.Status.LastRequestID)
	}
	if r.RequestsCount > 0 {
		ew.printf("Result:     %s  Followups: %s  Canceled: %s\n",
			yesNo(r.Status.HasResult), yesNo(r.Status.HasFollowups), yesNo(r.Status.IsCanceled))
	}

	return ew.err
}

// CSVHeader implements cli.CSVRecord.
func (r *Report) CSVHeader() []string {
	return []string{
		"id", "source", "analyzed_at", "requester", "responder", "requests",
		"status", "status_text", "has_result", "has_followups", "is_canceled", "last_request_id",
	}
}

// CSVRow implements cli.CSVRecord.
func (r *Report) CSVRow() []string {
	return []string{
		r.ID,
		r.Source,
		r.AnalyzedAt.Format(time.RFC3339),
		r.Users.Requester,
		r.Users.Responder,
		strconv.Itoa(r.RequestsCount),
		string(r.Status.Status),
		r.Status.StatusText,
		strconv.FormatBool(r.Status.HasResult),
		strconv.FormatBool(r.Status.HasFollowups),
		strconv.FormatBool(r.Status.IsCanceled),
		r.Status.LastRequestID,
	}
}

// Reports is an ordered list of reports.
type Reports []*Report

// RenderText writes one line per report followed by a summary.
func (rs Reports) RenderText(w io.Writer) error {
	ew := &errWriter{w: w}
	for _, r := range rs {
		ew.printf("%-12s %6s  %-20s %s\n",
			r.Status.Status,
			humanize.Comma(int64(r.RequestsCount)),
			orUnknown(r.Users.Requester),
			r.Source)
	}
	if ew.err != nil {
		return ew.err
	}
	return Summarize(rs).RenderText(w)
}

// CSVHeader implements cli.CSVTable.
func (rs Reports) CSVHeader() []string {
	return (&Report{}).CSVHeader()
}

// CSVRows implements cli.CSVTable.
func (rs Reports) CSVRows() [][]string {
	rows := make([][]string, len(rs))
	for i, r := range rs {
		rows[i] = r.CSVRow()
	}
	return rows
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
