package block

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError_Format(t *testing.T) {
	err := &ConfigError{Code: ErrCodeUnknownMethod, Block: "agg1", Param: "method", Message: "unknown method \"Mode\""}
	assert.Equal(t, `UNKNOWN_METHOD: unknown method "Mode" (block=agg1, param=method)`, err.Error())

	err = NewConfigError(ErrCodeShapeMismatch, "ic", "want %d values", 4)
	assert.Equal(t, "SHAPE_MISMATCH: want 4 values (param=ic)", err.Error())
}

func TestIsConfigError_Wrapped(t *testing.T) {
	err := fmt.Errorf("building model: %w", NewConfigError(ErrCodeInvalidParameter, "rate", "bad"))
	assert.True(t, IsConfigError(err))
	assert.False(t, IsPreconditionError(err))
}

func TestRecover_ConvertsKnownPanics(t *testing.T) {
	build := func() (err error) {
		defer Recover(&err)
		PanicConfig(ErrCodeInvalidCodec, "fields", "no fields")
		return nil
	}
	err := build()
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	tick := func() (err error) {
		defer Recover(&err)
		PanicNaN("median")
		return nil
	}
	err = tick()
	require.Error(t, err)
	assert.True(t, IsPreconditionError(err))
	assert.Contains(t, err.Error(), "block=median")
}

func TestRecover_RepanicsOthers(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		var err error
		defer Recover(&err)
		panic("boom")
	})
}

func TestMillis(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, Millis(250))
	assert.Equal(t, time.Duration(0), Millis(-5))
	assert.Equal(t, 1500*time.Microsecond, Millis(1.5))
}
