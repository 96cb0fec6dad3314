package watch

import (
	"sync"
	"time"
)

// Debouncer delays a callback until a key has been quiet for an interval.
// Keys are independent: a burst on one file does not delay another.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timers   map[string]*time.Timer
	stopped  bool

	// inflight counts callbacks that have started and not returned
	inflight sync.WaitGroup
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		timers:   make(map[string]*time.Timer),
	}
}

// Trigger schedules callback for key, replacing any pending callback for the
// same key.
func (d *Debouncer) Trigger(key string, callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if timer, ok := d.timers[key]; ok {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		current, ok := d.timers[key]
		if !ok || current != timer || d.stopped {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.inflight.Add(1)
		d.mu.Unlock()

		defer d.inflight.Done()
		callback()
	})
	d.timers[key] = timer
}

// Pending returns the number of keys waiting for their quiet period.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Stop cancels pending callbacks and waits for running ones to return.
// Later triggers are ignored. It must not be called from a callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	for key, timer := range d.timers {
		timer.Stop()
		delete(d.timers, key)
	}
	d.mu.Unlock()

	d.inflight.Wait()
}
