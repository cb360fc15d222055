// Package debounce provides a trailing-edge debouncer: rapid calls within
// the delay window are coalesced so that only the last one executes.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the delay used for validate-as-you-type triggers.
const DefaultDelay = 300 * time.Millisecond

// Debouncer holds a single pending invocation. Each Call cancels the
// previous pending one and re-arms the timer, so a burst of N calls runs
// exactly one function: the last one supplied.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// New creates a Debouncer with the given delay. A non-positive delay falls
// back to DefaultDelay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Call schedules fn to run after the delay, replacing any pending call.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending invocation. It is safe to call multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
