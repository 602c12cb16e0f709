package form

import (
	"context"
	"time"
)

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Deferred captures a single scheduled callback so that the owner of the page
// instance can run it on its own goroutine. Scheduling again replaces the
// pending callback. The zero value is ready to use.
type Deferred struct {
	delay time.Duration
	fn    func()
}

// AfterFunc implements Scheduler.
func (d *Deferred) AfterFunc(delay time.Duration, f func()) {
	d.delay = delay
	d.fn = f
}

// Pending reports whether a callback is waiting.
func (d *Deferred) Pending() bool { return d.fn != nil }

// Delay returns the delay of the pending callback.
func (d *Deferred) Delay() time.Duration { return d.delay }

// Wait sleeps for the pending delay and then runs the callback. If ctx ends
// first the callback is dropped and ctx's error returned. Without a pending
// callback Wait returns immediately.
func (d *Deferred) Wait(ctx context.Context) error {
	if d.fn == nil {
		return nil
	}

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		d.fn = nil
		return ctx.Err()
	case <-timer.C:
		d.RunNow()
		return nil
	}
}

// RunNow runs the pending callback immediately, ignoring the delay.
func (d *Deferred) RunNow() {
	fn := d.fn
	d.fn = nil
	if fn != nil {
		fn()
	}
}
