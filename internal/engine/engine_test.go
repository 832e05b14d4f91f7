package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/block"
)

func TestRun_SimulatedMaxTicks(t *testing.T) {
	rt := NewRuntime(NewSimClock(), 100*time.Millisecond)
	var times []time.Duration

	stats, err := Run(context.Background(), rt, StepFunc(func(ctx block.Context) error {
		times = append(times, ctx.Time())
		return nil
	}), RunOptions{MaxTicks: 4})

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Ticks)
	assert.Equal(t, []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, times)
	assert.Equal(t, 300*time.Millisecond, stats.LastTime)
}

func TestRun_SimulatedDuration(t *testing.T) {
	rt := NewRuntime(NewSimClock(), 250*time.Millisecond)

	stats, err := Run(context.Background(), rt, StepFunc(func(block.Context) error { return nil }),
		RunOptions{Duration: time.Second})

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Ticks, "ticks at 0, 250, 500, 750, 1000ms")
	assert.Equal(t, time.Second, stats.LastTime)
}

func TestRun_StepErrorStops(t *testing.T) {
	rt := NewRuntime(NewSimClock(), time.Millisecond)
	boom := errors.New("boom")

	stats, err := Run(context.Background(), rt, StepFunc(func(ctx block.Context) error {
		if ctx.Time() == 2*time.Millisecond {
			return boom
		}
		return nil
	}), RunOptions{MaxTicks: 10})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var re *RuntimeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, ErrCodeStepFailed, re.Code)
	assert.Equal(t, int64(3), re.Tick)
	assert.Equal(t, int64(2), stats.Ticks)
}

func TestRun_PreconditionPanicBecomesError(t *testing.T) {
	rt := NewRuntime(NewSimClock(), time.Millisecond)

	_, err := Run(context.Background(), rt, StepFunc(func(block.Context) error {
		block.PanicNaN("median")
		return nil
	}), RunOptions{MaxTicks: 1})

	require.Error(t, err)
	assert.True(t, IsPreconditionError(err))
	assert.True(t, block.IsPreconditionError(err))
}

func TestRun_OtherPanicsPropagate(t *testing.T) {
	rt := NewRuntime(NewSimClock(), time.Millisecond)
	assert.Panics(t, func() {
		_, _ = Run(context.Background(), rt, StepFunc(func(block.Context) error {
			panic("unexpected")
		}), RunOptions{MaxTicks: 1})
	})
}

func TestRun_AfterTickSeesEveryTick(t *testing.T) {
	rt := NewRuntime(NewSimClock(), time.Millisecond)
	var seqs []int64

	_, err := Run(context.Background(), rt, StepFunc(func(block.Context) error { return nil }), RunOptions{
		MaxTicks: 3,
		AfterTick: func(tick Tick) error {
			seqs = append(seqs, tick.Seq())
			return nil
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, seqs)
}

func TestRun_CancelledBetweenTicks(t *testing.T) {
	rt := NewRuntime(NewSimClock(), time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	stats, err := Run(ctx, rt, StepFunc(func(c block.Context) error {
		if c.Time() == 4*time.Millisecond {
			cancel()
		}
		return nil
	}), RunOptions{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(5), stats.Ticks, "the tick in progress completes")
}

func TestRun_PacedWithSystemClock(t *testing.T) {
	rt := NewRuntime(NewSystemClock(), 5*time.Millisecond)
	start := time.Now()

	stats, err := Run(context.Background(), rt, StepFunc(func(block.Context) error { return nil }),
		RunOptions{MaxTicks: 4})

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Ticks)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond, "three waits of one period")
}
