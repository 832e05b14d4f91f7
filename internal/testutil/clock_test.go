package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/blockrt/internal/block"
)

var _ block.Context = Context{}

func TestManualClock(t *testing.T) {
	c := NewManualClock()
	assert.Equal(t, time.Duration(0), c.Now())

	c.Advance(5 * time.Millisecond)
	c.Advance(5 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, c.Now())

	c.Set(3 * time.Millisecond)
	assert.Equal(t, 3*time.Millisecond, c.Now(), "manual clock may move backwards")

	c.Reset()
	assert.Equal(t, time.Duration(0), c.Now())
}

func TestContext_Defaults(t *testing.T) {
	var zero Context
	_, ok := zero.Timestep()
	assert.False(t, ok)
	assert.Equal(t, 10*time.Millisecond, zero.FundamentalTimestep())

	c := AtSeconds(1.5)
	assert.Equal(t, 1500*time.Millisecond, c.Time())
	step, ok := c.Timestep()
	assert.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, step)
}
