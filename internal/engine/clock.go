package engine

import (
	"sync"
	"time"
)

// Clock is a monotonic source of elapsed time.
type Clock interface {
	Now() time.Duration
}

// Stepper is implemented by clocks the run loop advances itself.
type Stepper interface {
	Step(d time.Duration)
}

// SystemClock reports wall time elapsed since it was created. It uses the
// monotonic reading of time.Time, so wall-clock adjustments do not affect it.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock starting at 0 now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since NewSystemClock.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// SimClock is a simulated clock that only moves when stepped.
//
// Thread-safety: SimClock is safe for concurrent use via internal mutex,
// though the run loop is its only writer.
type SimClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewSimClock creates a simulated clock starting at 0.
func NewSimClock() *SimClock {
	return &SimClock{}
}

// NewSimClockAt creates a simulated clock starting at a given offset.
// Used to resume a simulation from a known time.
func NewSimClockAt(start time.Duration) *SimClock {
	return &SimClock{now: start}
}

// Now returns the simulated time.
func (c *SimClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Step advances the simulated time by d. Negative steps are ignored.
func (c *SimClock) Step(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}
