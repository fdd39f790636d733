/*
Package debounce delays a callback until input has been quiet for a fixed interval.

Every Schedule call supersedes the previous one: the pending callback is
cancelled and a new one is armed. Only the callback from the last call inside
the window ever runs.

	d := debounce.New(300 * time.Millisecond)
	d.Schedule(func() { search(query) })

The clock is replaceable so tests can fire timers by hand.
*/
package debounce

import (
	"sync"
	"time"
)

const DefaultDelay = 300 * time.Millisecond

// Timer is the part of *time.Timer a Debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc arms fn to run after d. time.AfterFunc satisfies it through SystemClock.
type AfterFunc func(d time.Duration, fn func()) Timer

// SystemClock schedules with the runtime timer.
func SystemClock(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Handle identifies one scheduled evaluation.
type Handle uint64

// Debouncer holds at most one pending callback.
type Debouncer struct {
	delay     time.Duration
	afterFunc AfterFunc

	mu      sync.Mutex
	timer   Timer
	current Handle
	next    Handle
}

// New creates a Debouncer using the system clock.
func New(delay time.Duration) *Debouncer {
	return NewWithClock(delay, SystemClock)
}

// NewWithClock creates a Debouncer that arms timers through af.
func NewWithClock(delay time.Duration, af AfterFunc) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if af == nil {
		af = SystemClock
	}
	return &Debouncer{delay: delay, afterFunc: af}
}

// Delay returns the quiet interval.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels the pending callback, if any, and arms fn.
func (d *Debouncer) Schedule(fn func()) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.next++
	h := d.next
	d.current = h
	d.timer = d.afterFunc(d.delay, func() {
		if !d.claim(h) {
			return
		}
		fn()
	})
	return h
}

// claim reports whether h is still the live handle and retires it.
// A timer that already fired before Stop could cancel it loses here.
func (d *Debouncer) claim(h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current != h {
		return false
	}
	d.current = 0
	d.timer = nil
	return true
}

// Cancel drops the pending callback. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	pending := d.current != 0
	d.stopLocked()
	return pending
}

// Pending reports whether a callback is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current != 0
}

// Current returns the live handle, or 0.
func (d *Debouncer) Current() Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.current = 0
}
