package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/blockrt/internal/signal"
	"github.com/roach88/blockrt/internal/testutil"
)

func TestCounter(t *testing.T) {
	var b Counter[float64, bool]
	p := &CounterParams{}
	ctx := testutil.Context{}
	in := func(v float64, reset bool) signal.Tuple2[float64, bool] {
		return signal.Tuple2[float64, bool]{V0: v, V1: reset}
	}

	assert.Equal(t, 1.0, b.Process(p, ctx, in(1, false)))
	assert.Equal(t, 1.0, b.Process(p, ctx, in(0, false)))
	assert.Equal(t, 2.0, b.Process(p, ctx, in(-0.5, false)))
	assert.Equal(t, 0.0, b.Process(p, ctx, in(1, true)), "reset wins over value")
	assert.Equal(t, 1.0, b.Process(p, ctx, in(1, false)))
}

func TestMatrixCounter_ScalarReset(t *testing.T) {
	b := NewMatrixCounter[uint8, uint8](1, 3)
	p := &CounterParams{}
	ctx := testutil.Context{}
	in := signal.FromRows([][]uint8{{1, 0, 1}})

	b.Process(p, ctx, signal.Tuple2[*signal.Matrix[uint8], uint8]{V0: in})
	out := b.Process(p, ctx, signal.Tuple2[*signal.Matrix[uint8], uint8]{V0: in})
	assert.Equal(t, []float64{2, 0, 2}, out.Data())

	out = b.Process(p, ctx, signal.Tuple2[*signal.Matrix[uint8], uint8]{V0: in, V1: 1})
	assert.Equal(t, []float64{0, 0, 0}, out.Data())
}

func TestMatrixResetCounter_ElementwiseReset(t *testing.T) {
	b := NewMatrixResetCounter[bool, bool](2, 1)
	p := &CounterParams{}
	ctx := testutil.Context{}
	ones := signal.FromColumns([][]bool{{true, true}})

	b.Process(p, ctx, signal.Tuple2[*signal.Matrix[bool], *signal.Matrix[bool]]{V0: ones, V1: signal.NewMatrix[bool](2, 1)})
	out := b.Process(p, ctx, signal.Tuple2[*signal.Matrix[bool], *signal.Matrix[bool]]{
		V0: ones,
		V1: signal.FromColumns([][]bool{{false, true}}),
	})
	assert.Equal(t, 2.0, out.At(0, 0))
	assert.Equal(t, 0.0, out.At(1, 0))
}
