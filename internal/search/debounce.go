// Package search delays search-as-you-type filtering until input goes quiet.
package search

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is how long input must stay idle before a search fires.
const DefaultDelay = 300 * time.Millisecond

// Debouncer runs fn with the most recent value once no new value has arrived for delay.
// Every Trigger cancels the pending call and schedules a new one.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger records value and restarts the idle timer.
func (d *Debouncer[T]) Trigger(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq, value)
	})
}

// Cancel drops the pending call, if any, and reports whether one was pending.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Stop cancels the pending call and ignores every later Trigger.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer[T]) cancelLocked() bool {
	if d.timer == nil {
		return false
	}
	pending := d.timer.Stop()
	d.timer = nil
	// a timer that already fired but has not taken the lock yet is invalidated here
	d.seq++
	return pending
}

func (d *Debouncer[T]) fire(seq uint64, value T) {
	d.mu.Lock()
	if seq != d.seq || d.stopped {
		d.mu.Unlock()
		zap.L().Debug("Dropping superseded debounced call")
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(value)
}
