package telemetry

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodFromRate(t *testing.T) {
	tests := []struct {
		hz   float64
		want time.Duration
	}{
		{10, 100 * time.Millisecond},
		{2, 500 * time.Millisecond},
		{0, 0},
		{-1, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PeriodFromRate(tt.hz), "rate %v", tt.hz)
	}
}

func TestGate(t *testing.T) {
	g := NewGate(100 * time.Millisecond)
	assert.True(t, g.Due(0))
	g.Mark(0)
	assert.False(t, g.Due(time.Millisecond))
	assert.True(t, g.Due(123*time.Millisecond))
	g.Mark(123 * time.Millisecond)

	last, ok := g.Last()
	assert.True(t, ok)
	assert.Equal(t, 123*time.Millisecond, last)

	off := NewGate(0)
	assert.False(t, off.Due(0))
	assert.False(t, off.Due(time.Hour))
}

type fakeLogger struct {
	gate Gate
	got  []Record
	err  error
}

func (f *fakeLogger) ShouldLog(t time.Duration) bool { return f.gate.Due(t) }

func (f *fakeLogger) Log(_ context.Context, rec Record) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, rec)
	f.gate.Mark(rec.AppTime)
	return nil
}

func TestEmit_BuildsOnlyWhenDue(t *testing.T) {
	l := &fakeLogger{gate: NewGate(100 * time.Millisecond)}
	builds := 0
	build := func(at time.Duration) func() Record {
		return func() Record {
			builds++
			return Record{AppTime: at}
		}
	}

	ctx := context.Background()
	for _, at := range []time.Duration{0, 10 * time.Millisecond, 100 * time.Millisecond} {
		require.NoError(t, Emit(ctx, l, at, build(at)))
	}
	assert.Equal(t, 2, builds)
	assert.Len(t, l.got, 2)

	assert.NoError(t, Emit(ctx, nil, 0, build(0)))
}

func TestMulti_GatesEachMember(t *testing.T) {
	fast := &fakeLogger{gate: NewGate(10 * time.Millisecond)}
	slow := &fakeLogger{gate: NewGate(100 * time.Millisecond)}
	m := Multi{fast, slow}

	ctx := context.Background()
	for tick := 0; tick <= 10; tick++ {
		at := time.Duration(tick) * 10 * time.Millisecond
		require.NoError(t, Emit(ctx, m, at, func() Record { return Record{AppTime: at} }))
	}
	assert.Len(t, fast.got, 11)
	assert.Len(t, slow.got, 2)
}

func TestMulti_JoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &fakeLogger{gate: NewGate(time.Millisecond)}
	bad := &fakeLogger{gate: NewGate(time.Millisecond), err: boom}

	err := Multi{bad, ok}.Log(context.Background(), Record{})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, ok.got, 1, "a failing member does not stop the others")
}
