package metrics

import "sync"

// SourceLimiter caps how many distinct sources a per-source gauge may carry.
// A watch over a large directory would otherwise grow the series count
// without bound.
type SourceLimiter struct {
	mu   sync.Mutex
	max  int
	seen map[string]struct{}
}

// NewSourceLimiter creates a limiter admitting at most max sources.
func NewSourceLimiter(max int) *SourceLimiter {
	return &SourceLimiter{max: max, seen: make(map[string]struct{})}
}

// Allow admits source if it is already tracked or room remains.
func (l *SourceLimiter) Allow(source string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[source]; ok {
		return true
	}
	if len(l.seen) >= l.max {
		return false
	}
	l.seen[source] = struct{}{}
	return true
}

// Len returns the number of tracked sources.
func (l *SourceLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}
