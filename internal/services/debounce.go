package services

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the recommended quiescence window for
// interactive availability checks.
const DefaultDebounceDelay = 500 * time.Millisecond

// Debouncer coalesces rapid repeated work per key: scheduling a new task
// for a key replaces the pending one, so only the value present at the end
// of a burst runs. It also tracks the latest accepted value per key so that
// results of older in-flight work can be discarded instead of overwriting
// newer ones.
type Debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	pending map[string]*time.Timer
	latest  map[string]string
}

// NewDebouncer creates a Debouncer with the given quiescence delay.
// A non-positive delay falls back to DefaultDebounceDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]*time.Timer),
		latest:  make(map[string]string),
	}
}

// Schedule runs fn(value) after the quiescence delay unless a newer value
// is scheduled for the same key first. At most one timer is pending per key.
func (d *Debouncer) Schedule(key, value string, fn func(value string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest[key] = value
	if timer, ok := d.pending[key]; ok {
		timer.Stop()
	}
	d.pending[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.pending, key)
		d.mu.Unlock()
		fn(value)
	})
}

// StillCurrent reports whether value is the latest scheduled value for key.
// Callbacks completing asynchronously check this before applying their
// result; a stale result must not overwrite a newer one.
func (d *Debouncer) StillCurrent(key, value string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest[key] == value
}

// Cancel drops any pending task for key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[key]; ok {
		timer.Stop()
		delete(d.pending, key)
	}
}
