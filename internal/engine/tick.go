package engine

import "time"

// Tick is the immutable timing snapshot for one tick. It implements
// block.Context.
type Tick struct {
	seq         int64
	time        time.Duration
	step        time.Duration
	hasStep     bool
	fundamental time.Duration
}

// Time returns the elapsed time since the runtime started.
func (t Tick) Time() time.Duration { return t.time }

// Timestep returns the time since the previous tick; ok is false on the
// first tick.
func (t Tick) Timestep() (time.Duration, bool) { return t.step, t.hasStep }

// FundamentalTimestep returns the configured target period.
func (t Tick) FundamentalTimestep() time.Duration { return t.fundamental }

// Seq returns the 1-based tick number.
func (t Tick) Seq() int64 { return t.seq }

// Runtime turns clock readings into Ticks.
//
// INVARIANTS:
//   - the clock is read exactly once per Next call
//   - successive Ticks have strictly increasing Seq and non-decreasing Time
//   - Time is measured from the first reading, so the first tick is at 0
type Runtime struct {
	clock       Clock
	fundamental time.Duration

	seq    int64
	origin time.Duration
	last   time.Duration
}

// NewRuntime creates a runtime over clock with the given target period.
// Panics if fundamental is not positive.
func NewRuntime(clock Clock, fundamental time.Duration) *Runtime {
	if fundamental <= 0 {
		panic("engine: fundamental timestep must be positive")
	}
	return &Runtime{clock: clock, fundamental: fundamental}
}

// Next reads the clock and returns the next Tick.
func (r *Runtime) Next() Tick {
	now := r.clock.Now()
	if r.seq == 0 {
		r.origin = now
		r.seq = 1
		r.last = 0
		return Tick{seq: 1, fundamental: r.fundamental}
	}

	elapsed := now - r.origin
	if elapsed < r.last {
		elapsed = r.last
	}
	step := elapsed - r.last
	r.last = elapsed
	r.seq++
	return Tick{seq: r.seq, time: elapsed, step: step, hasStep: true, fundamental: r.fundamental}
}

// Fundamental returns the target tick period.
func (r *Runtime) Fundamental() time.Duration {
	return r.fundamental
}

// Ticks returns how many ticks have been produced.
func (r *Runtime) Ticks() int64 {
	return r.seq
}

// Clock returns the clock the runtime reads.
func (r *Runtime) Clock() Clock {
	return r.clock
}
