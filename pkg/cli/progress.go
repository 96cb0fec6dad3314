package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// ProgressReporter receives per-file progress from a directory scan.
// Implementations must be safe for concurrent use by workers.
type ProgressReporter interface {
	Start(total int64)
	Increment()
	Finish()
	Error(err error)
}

// LineProgress redraws one status line per update:
//
//	analyzed 1,204/5,000 exports, 3 failed, eta 9s
//
// Failures are printed above the line as they happen.
type LineProgress struct {
	w   io.Writer
	now func() time.Time

	mu      sync.Mutex
	total   int64
	done    int64
	failed  int64
	started time.Time
}

// NewProgressReporter writes progress to w, or to stderr when w is nil.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &LineProgress{w: w, now: time.Now}
}

func (p *LineProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total, p.done, p.failed = total, 0, 0
	p.started = p.now()
	p.draw()
}

func (p *LineProgress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.draw()
}

// Finish draws the final line and ends it. Files skipped by cancellation
// are left uncounted.
func (p *LineProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total == 0 {
		return
	}
	p.draw()
	fmt.Fprintln(p.w)
}

func (p *LineProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed++
	fmt.Fprintf(p.w, "\r\033[K  skipped %v\n", err)
	p.draw()
}

func (p *LineProgress) draw() {
	if p.total == 0 {
		return
	}

	line := fmt.Sprintf("analyzed %s/%s exports", humanize.Comma(p.done), humanize.Comma(p.total))
	if p.failed > 0 {
		line += fmt.Sprintf(", %s failed", humanize.Comma(p.failed))
	}
	if eta, ok := p.eta(); ok {
		line += ", eta " + eta.String()
	}
	fmt.Fprintf(p.w, "\r\033[K%s", line)
}

// eta extrapolates from the mean time per finished file.
func (p *LineProgress) eta() (time.Duration, bool) {
	if p.done == 0 || p.done >= p.total {
		return 0, false
	}
	per := p.now().Sub(p.started) / time.Duration(p.done)
	return (per * time.Duration(p.total-p.done)).Round(time.Second), true
}

// NoopProgress discards progress updates.
type NoopProgress struct{}

func (NoopProgress) Start(int64) {}
func (NoopProgress) Increment()  {}
func (NoopProgress) Finish()     {}
func (NoopProgress) Error(error) {}
