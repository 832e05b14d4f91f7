package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/blockrt/internal/block"
)

// Model is a fixed block graph. Step calls every block once, in topological
// order, against the same Context.
type Model interface {
	Step(ctx block.Context) error
}

// StepFunc adapts a function to Model.
type StepFunc func(ctx block.Context) error

// Step calls f.
func (f StepFunc) Step(ctx block.Context) error { return f(ctx) }

// RunOptions bounds and observes a run. Zero values mean unbounded.
type RunOptions struct {
	// MaxTicks stops the run after this many ticks.
	MaxTicks int64

	// Duration stops the run before the first tick whose Time exceeds it.
	Duration time.Duration

	// AfterTick is called after each successful step, typically to feed
	// telemetry. An error stops the run.
	AfterTick func(tick Tick) error

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Stats summarizes a finished run.
type Stats struct {
	Ticks    int64
	LastTime time.Duration
	// Overruns counts paced ticks that started after their deadline.
	Overruns int64
}

// Run ticks m until a bound in opts is reached, ctx is cancelled, or a step
// fails. Cancellation returns ctx.Err() together with the stats so far.
//
// With a SimClock (any Stepper) the clock is advanced by one fundamental
// timestep after each tick and Run never sleeps. Otherwise Run paces ticks
// to the fundamental timestep measured from the first tick.
func Run(ctx context.Context, rt *Runtime, m Model, opts RunOptions) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var stats Stats
	stepper, simulated := rt.Clock().(Stepper)

	var timer *time.Timer
	if !simulated {
		timer = time.NewTimer(time.Hour)
		timer.Stop()
		defer timer.Stop()
	}
	begin := time.Now()

	logger.Debug("tick loop starting",
		"fundamental", rt.Fundamental(),
		"simulated", simulated,
		"max_ticks", opts.MaxTicks,
		"duration", opts.Duration)

	for {
		if err := ctx.Err(); err != nil {
			logger.Debug("tick loop cancelled", "ticks", stats.Ticks)
			return stats, err
		}

		tick := rt.Next()
		if opts.Duration > 0 && tick.Time() > opts.Duration {
			break
		}

		if err := step(m, tick); err != nil {
			logger.Error("tick failed", "tick", tick.Seq(), "time", tick.Time(), "error", err)
			return stats, err
		}
		stats.Ticks++
		stats.LastTime = tick.Time()

		if opts.AfterTick != nil {
			if err := opts.AfterTick(tick); err != nil {
				return stats, NewStepError(tick, err)
			}
		}

		if opts.MaxTicks > 0 && stats.Ticks >= opts.MaxTicks {
			break
		}

		if simulated {
			stepper.Step(rt.Fundamental())
			continue
		}

		wait := time.Until(begin.Add(time.Duration(stats.Ticks) * rt.Fundamental()))
		if wait <= 0 {
			stats.Overruns++
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case <-timer.C:
		}
	}

	logger.Debug("tick loop finished", "ticks", stats.Ticks, "overruns", stats.Overruns)
	return stats, nil
}

// step runs one tick, converting precondition panics into errors.
func step(m Model, tick Tick) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if pe, ok := r.(*block.PreconditionError); ok {
			err = NewPreconditionError(tick, pe)
			return
		}
		panic(r)
	}()

	if err := m.Step(tick); err != nil {
		return NewStepError(tick, err)
	}
	return nil
}
