package testutil

import "time"

// Context is a fixed block.Context for unit tests.
//
// The zero value is the first tick at time 0 with no timestep and a 10ms
// fundamental timestep.
type Context struct {
	T           time.Duration
	Step        time.Duration
	HasStep     bool
	Fundamental time.Duration
}

// At returns a Context at time t with a 10ms timestep.
func At(t time.Duration) Context {
	return Context{T: t, Step: 10 * time.Millisecond, HasStep: t > 0}
}

// AtSeconds returns a Context at s seconds.
func AtSeconds(s float64) Context {
	return At(time.Duration(s * float64(time.Second)))
}

func (c Context) Time() time.Duration { return c.T }

func (c Context) Timestep() (time.Duration, bool) { return c.Step, c.HasStep }

func (c Context) FundamentalTimestep() time.Duration {
	if c.Fundamental == 0 {
		return 10 * time.Millisecond
	}
	return c.Fundamental
}
