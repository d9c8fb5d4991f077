// Package debounce delays a call until a quiet interval has passed.
//
// Each Trigger cancels the pending call and restarts the wait, so a burst
// of triggers results in a single call carrying the last value. Calls never
// overlap: a trigger that arrives while the function runs is picked up by a
// fresh wait once the run completes.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs fn with the most recent value after delay without triggers.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	value   T
	pending bool
	running bool
	stopped bool
	done    chan struct{}
}

// New creates a debouncer. A non-positive delay falls back to one second.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = time.Second
	}
	return &Debouncer[T]{
		delay: delay,
		fn:    fn,
	}
}

// Delay returns the quiet interval.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn(v), replacing any pending value and restarting the wait.
// Triggers after Stop are ignored.
func (d *Debouncer[T]) Trigger(v T) {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.value = v
	d.pending = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.onTimer)
		return
	}
	d.timer.Reset(d.delay)
}

// Pending reports whether a call is waiting to run.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush runs a pending call immediately on the calling goroutine.
// If a call is already running the pending value is left for the next wait.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if !d.pending || d.running {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.run()
}

// Cancel drops the pending call, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Wait blocks until a call that is already running has returned. It must
// not be called from fn.
func (d *Debouncer[T]) Wait() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	done := d.done
	d.mu.Unlock()
	<-done
}

// Stop cancels the pending call and ignores all later triggers.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.Cancel()
}

func (d *Debouncer[T]) onTimer() {
	d.mu.Lock()
	if d.running {
		// The current run picks the new value up when it finishes.
		d.mu.Unlock()
		return
	}
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.run()
}

// run executes fn with the pending value. Called with d.mu held; releases it.
func (d *Debouncer[T]) run() {
	d.pending = false
	d.running = true
	d.done = make(chan struct{})
	v := d.value
	d.mu.Unlock()

	d.fn(v)

	d.mu.Lock()
	d.running = false
	close(d.done)
	if d.pending && !d.stopped && d.timer != nil {
		d.timer.Reset(d.delay)
	}
	d.mu.Unlock()
}
