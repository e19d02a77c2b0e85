package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerRunsOnlyLastCallback(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, time.Second)

	var got []int
	for i := 1; i <= 3; i++ {
		n := i
		d.Debounce(func() { got = append(got, n) })
	}

	assert.Equal(t, 1, sched.live())
	sched.fireAll()
	assert.Equal(t, []int{3}, got)
}

func TestDebouncerCancel(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, time.Second)

	called := false
	d.Debounce(func() { called = true })
	d.Cancel()

	assert.Zero(t, sched.fireAll())
	assert.False(t, called)

	// Cancel with nothing pending is harmless.
	d.Cancel()
}

func TestDebouncerWallClock(t *testing.T) {
	d := NewDebouncer(nil, 50*time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, d.Duration())

	var calls atomic.Int32
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		d.Debounce(func() {
			if calls.Add(1) == 1 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced callback never ran")
	}

	// Give a stray timer a chance to misfire.
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestDebouncerWallClockCancel(t *testing.T) {
	d := NewDebouncer(ClockScheduler(), 10*time.Millisecond)

	var calls atomic.Int32
	d.Debounce(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
