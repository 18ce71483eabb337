package sched

import (
	"context"
	"time"
)

// Driver advances a Scheduler in step with the wall clock, for hosts that
// have no render loop of their own (the line REPL).
type Driver struct {
	// Scheduler is the queue being driven.
	Scheduler *Scheduler
	// Interval is the tick period. If <= 0, 16ms is used.
	Interval time.Duration

	// NewTicker creates a ticker channel and its stop function.
	// If nil, time.NewTicker is used. Inject a custom implementation for
	// deterministic testing without real timers.
	NewTicker func(d time.Duration) (tick <-chan time.Time, stop func())
}

// RunUntil advances the scheduler by the wall time elapsed between ticks
// until done reports true (checked before the first tick and after every
// advance) or ctx is cancelled.
func (d *Driver) RunUntil(ctx context.Context, done func() bool) error {
	if done() {
		return nil
	}

	interval := d.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	newTicker := d.NewTicker
	if newTicker == nil {
		newTicker = defaultNewTicker
	}

	ch, stop := newTicker(interval)
	defer stop()

	base := d.Scheduler.Now()
	var start time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ch:
			if start.IsZero() {
				start = t.Add(-interval)
			}
			d.Scheduler.AdvanceTo(base + t.Sub(start))
			if done() {
				return nil
			}
		}
	}
}

// defaultNewTicker wraps time.NewTicker to match the NewTicker signature.
func defaultNewTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
