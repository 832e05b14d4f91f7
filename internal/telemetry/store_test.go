package telemetry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/engine"
	"github.com/roach88/blockrt/internal/store"
)

func TestStoreLogger_RecordsRun(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "telemetry.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	gen := engine.NewFixedGenerator("run-a")
	l, err := StartRun(ctx, st, gen, RunInfo{
		Model:       "demo",
		Fundamental: 10 * time.Millisecond,
		Params:      map[string]map[string]string{"Ramp1": {"rate": "2"}},
	}, 20*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "run-a", l.RunID())

	for tick := uint64(1); tick <= 5; tick++ {
		at := time.Duration(tick-1) * 10 * time.Millisecond
		require.NoError(t, Emit(ctx, l, at, func() Record {
			return testRecord(tick, at, float64(tick))
		}))
	}
	require.NoError(t, l.Finish(ctx, 5))

	run, err := st.GetRun(ctx, "run-a")
	require.NoError(t, err)
	assert.True(t, run.Finished)
	assert.Equal(t, uint64(5), run.Ticks)
	assert.Equal(t, "2", run.Params["Ramp1"]["rate"])

	series, err := st.ReadSeries(ctx, "run-a", "ramp")
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, []uint64{1, 3, 5}, []uint64{series[0].Tick, series[1].Tick, series[2].Tick})
	assert.Equal(t, 5.0, series[2].Data.Scalar())
}
