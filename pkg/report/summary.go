package report

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"mercator-hq/chatlens/pkg/analysis"
)

// Summary aggregates many reports.
type Summary struct {
	Dialogs    int                     `json:"dialogs"`
	Requests   int                     `json:"requests"`
	ByStatus   map[analysis.Status]int `json:"byStatus"`
	Requesters int                     `json:"requesters"`
}

// Summarize aggregates reports. Every status is present in ByStatus.
func Summarize(reports []*Report) Summary {
	s := Summary{
		ByStatus: map[analysis.Status]int{
			analysis.StatusCompleted:  0,
			analysis.StatusCanceled:   0,
			analysis.StatusInProgress: 0,
		},
	}

	requesters := make(map[string]struct{})
	for _, r := range reports {
		s.Dialogs++
		s.Requests += r.RequestsCount
		s.ByStatus[r.Status.Status]++
		if r.Users.Requester != "" {
			requesters[r.Users.Requester] = struct{}{}
		}
	}
	s.Requesters = len(requesters)

	return s
}

// RenderText writes a one-line summary.
func (s Summary) RenderText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("%s, %s from %s: %s completed, %s canceled, %s in progress\n",
		english.Plural(s.Dialogs, "dialog", ""),
		english.Plural(s.Requests, "request", ""),
		english.Plural(s.Requesters, "requester", ""),
		humanize.Comma(int64(s.ByStatus[analysis.StatusCompleted])),
		humanize.Comma(int64(s.ByStatus[analysis.StatusCanceled])),
		humanize.Comma(int64(s.ByStatus[analysis.StatusInProgress])),
	)
	return ew.err
}
