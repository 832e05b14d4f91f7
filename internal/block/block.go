package block

import (
	"time"

	"github.com/roach88/blockrt/internal/signal"
)

// Context is the per-tick timing handle. All blocks called within one tick
// see the same values.
type Context interface {
	// Time is the elapsed time since the runtime started.
	Time() time.Duration
	// Timestep is the time since the previous tick. ok is false on the
	// first tick.
	Timestep() (step time.Duration, ok bool)
	// FundamentalTimestep is the configured target tick period.
	FundamentalTimestep() time.Duration
}

// Generator produces a signal from parameters and time alone. Output must
// depend only on params and ctx.Time(), never on how often it was called.
type Generator[P, O any] interface {
	Generate(params *P, ctx Context) O
}

// Process transforms an input signal into an output signal.
type Process[P, I, O any] interface {
	Process(params *P, ctx Context, in I) O
}

// Input produces a signal that originates outside the tick loop.
type Input[P, O any] interface {
	Input(params *P, ctx Context) O
}

// Output consumes a signal and performs a side effect.
type Output[P, I any] interface {
	Output(params *P, ctx Context, in I)
}

// Snapshotter is implemented by blocks that expose their held output to
// telemetry.
type Snapshotter interface {
	Snapshot() signal.Data
}

// Seconds converts a duration to float seconds for numeric blocks.
func Seconds(d time.Duration) float64 {
	return d.Seconds()
}

// Millis converts float milliseconds, as found in parameter files, to a
// duration. Negative and NaN inputs become zero.
func Millis(ms float64) time.Duration {
	if !(ms > 0) {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}
