package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/testutil"
)

var _ block.Context = Tick{}

func TestRuntime_FirstTickHasNoTimestep(t *testing.T) {
	clock := testutil.NewManualClock()
	clock.Set(5 * time.Second)
	rt := NewRuntime(clock, 10*time.Millisecond)

	tick := rt.Next()
	assert.Equal(t, int64(1), tick.Seq())
	assert.Equal(t, time.Duration(0), tick.Time(), "time is measured from the first tick")
	_, ok := tick.Timestep()
	assert.False(t, ok)
	assert.Equal(t, 10*time.Millisecond, tick.FundamentalTimestep())
}

func TestRuntime_TimestepFollowsClock(t *testing.T) {
	clock := testutil.NewManualClock()
	rt := NewRuntime(clock, 10*time.Millisecond)
	rt.Next()

	clock.Advance(12 * time.Millisecond)
	tick := rt.Next()
	step, ok := tick.Timestep()
	assert.True(t, ok)
	assert.Equal(t, 12*time.Millisecond, step, "jitter shows up in Timestep, not in the fundamental")
	assert.Equal(t, 12*time.Millisecond, tick.Time())

	clock.Advance(8 * time.Millisecond)
	tick = rt.Next()
	step, _ = tick.Timestep()
	assert.Equal(t, 8*time.Millisecond, step)
	assert.Equal(t, 20*time.Millisecond, tick.Time())
	assert.Equal(t, int64(3), rt.Ticks())
}

func TestRuntime_TimeNeverDecreases(t *testing.T) {
	clock := testutil.NewManualClock()
	rt := NewRuntime(clock, time.Millisecond)
	rt.Next()

	clock.Set(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, rt.Next().Time())

	clock.Set(30 * time.Millisecond)
	tick := rt.Next()
	assert.Equal(t, 50*time.Millisecond, tick.Time(), "clock regression is clamped")
	step, ok := tick.Timestep()
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), step)
}

func TestRuntime_TickIsImmutableSnapshot(t *testing.T) {
	clock := testutil.NewManualClock()
	rt := NewRuntime(clock, time.Millisecond)
	rt.Next()
	clock.Advance(time.Second)
	tick := rt.Next()

	clock.Advance(time.Hour)
	assert.Equal(t, time.Second, tick.Time(), "reading the tick twice gives the same instant")
	assert.Equal(t, time.Second, tick.Time())
}

func TestNewRuntime_RejectsNonPositivePeriod(t *testing.T) {
	assert.Panics(t, func() { NewRuntime(NewSimClock(), 0) })
}
