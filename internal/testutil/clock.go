package testutil

import (
	"sync"
	"time"
)

// ManualClock is a clock tests move by hand.
//
// Unlike engine.SimClock, ManualClock can be set to any value, including
// backwards, which lets tests exercise jitter and clock regressions.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManualClock creates a clock reading 0.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Reset sets the clock back to 0.
func (c *ManualClock) Reset() {
	c.Set(0)
}
