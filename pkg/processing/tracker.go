package processing

import (
	"sync"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/report"
)

// Transition is a change of dialog status for one source.
type Transition struct {
	Source string
	From   analysis.Status
	To     analysis.Status
}

// StatusTracker remembers the last observed status per source.
type StatusTracker struct {
	mu   sync.Mutex
	last map[string]analysis.Status
}

// NewStatusTracker creates an empty tracker.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{last: make(map[string]analysis.Status)}
}

// Observe records rep and returns the transition it caused. The first
// observation of a source has an empty From and counts as a change.
func (t *StatusTracker) Observe(rep *report.Report) (Transition, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.last[rep.Source]
	t.last[rep.Source] = rep.Status.Status

	tr := Transition{Source: rep.Source, From: prev, To: rep.Status.Status}
	return tr, !seen || prev != rep.Status.Status
}

// Seed sets the known status of a source without reporting a transition.
func (t *StatusTracker) Seed(source string, status analysis.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last[source] = status
}

// Status returns the last observed status of source.
func (t *StatusTracker) Status(source string) (analysis.Status, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.last[source]
	return s, ok
}
