package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/promote"
	"github.com/roach88/blockrt/internal/signal"
	"github.com/roach88/blockrt/internal/testutil"
)

func TestBias_PromotesOperands(t *testing.T) {
	var b Bias[uint8, float32, float32, promote.U8F32]
	got := b.Process(&BiasParams[uint8]{Offset: 3}, testutil.Context{}, 1.5)
	assert.Equal(t, float32(4.5), got)
}

func TestBias_SameKind(t *testing.T) {
	var b Bias[float64, float64, float64, promote.Same[float64]]
	assert.Equal(t, -1.0, b.Process(&BiasParams[float64]{Offset: -3}, testutil.Context{}, 2))
}

func TestMatrixBias(t *testing.T) {
	b := NewMatrixBias[int16, float64, float64, promote.I16F64](2, 2)
	in := signal.FromRows([][]float64{{1, 2}, {3, 4}})

	out := b.Process(&BiasParams[int16]{Offset: 10}, testutil.Context{}, in)
	assert.True(t, out.Equal(signal.FromRows([][]float64{{11, 12}, {13, 14}})))
}

func TestMatrixBias_ShapeMismatch(t *testing.T) {
	b := NewMatrixBias[float64, float64, float64, promote.Same[float64]](2, 2)
	err := catch(func() {
		b.Process(&BiasParams[float64]{}, testutil.Context{}, signal.NewMatrix[float64](3, 1))
	})
	require.Error(t, err)
	assert.True(t, block.IsPreconditionError(err))
}
