package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/signal"
)

func TestCreateRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := Run{
		ID:          "0190a000-0000-7000-8000-000000000001",
		Model:       "demo",
		Fundamental: 500 * time.Millisecond,
		Params:      map[string]map[string]string{"Ramp1": {"rate": "2"}},
	}
	require.NoError(t, s.CreateRun(ctx, run))
	run.Model = "other"
	require.NoError(t, s.CreateRun(ctx, run), "duplicate id is ignored")

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Model)
	assert.Equal(t, 500*time.Millisecond, got.Fundamental)
	assert.Equal(t, "2", got.Params["Ramp1"]["rate"])
	assert.False(t, got.Finished)
}

func TestCreateRun_RejectsNonPositiveTimestep(t *testing.T) {
	s := createTestStore(t)
	err := s.CreateRun(context.Background(), Run{ID: "r", Model: "demo"})
	assert.Error(t, err)
}

func TestFinishRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	require.NoError(t, s.FinishRun(ctx, "run-1", 42))
	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, got.Finished)
	assert.Equal(t, uint64(42), got.Ticks)

	err = s.FinishRun(ctx, "missing", 1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWriteSamples_FirstWriteWins(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	require.NoError(t, s.WriteSample(ctx, scalarSample("run-1", 0, "ramp", 1)))
	require.NoError(t, s.WriteSample(ctx, scalarSample("run-1", 0, "ramp", 99)))

	got, err := s.ReadSamples(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Data.Scalar())
}

func TestWriteSamples_AllOrNothing(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	err := s.WriteSamples(ctx, []Sample{
		scalarSample("run-1", 0, "a", 1),
		scalarSample("missing-run", 0, "b", 2),
	})
	require.Error(t, err)

	got, err := s.ReadSamples(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteSamples_PayloadKinds(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	m := signal.MatrixData(signal.FromRows([][]float64{{1, 2}, {3, 4}}))
	b := signal.BytesData([]byte{0x00, 0xff})
	require.NoError(t, s.WriteSamples(ctx, []Sample{
		{RunID: "run-1", Tick: 3, Name: "m", Data: m},
		{RunID: "run-1", Tick: 3, Name: "b", Data: b},
	}))

	got, err := s.ReadSamples(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b, got[0].Data)
	assert.Equal(t, m, got[1].Data)
}
