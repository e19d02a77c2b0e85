package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window between the last keystroke and the
// outbound search
const DefaultDebounce = 1500 * time.Millisecond

// Timer is a pending callback that can be stopped before it fires
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ClockScheduler schedules on the wall clock
func ClockScheduler() Scheduler {
	return clockScheduler{}
}

// Debouncer keeps at most one pending timer. Scheduling a new callback stops
// the previous one.
type Debouncer struct {
	mu        sync.Mutex
	scheduler Scheduler
	timer     Timer
	duration  time.Duration
}

// NewDebouncer creates a debouncer with the given quiescence window
func NewDebouncer(scheduler Scheduler, duration time.Duration) *Debouncer {
	if scheduler == nil {
		scheduler = ClockScheduler()
	}
	return &Debouncer{
		scheduler: scheduler,
		duration:  duration,
	}
}

// Debounce runs fn once the window has elapsed without another call
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.scheduler.AfterFunc(d.duration, fn)
}

// Cancel stops any pending callback
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the quiescence window
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
