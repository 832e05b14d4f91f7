package blocks

import (
	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/promote"
	"github.com/roach88/blockrt/internal/signal"
)

// BiasParams holds the offset added to every input value.
type BiasParams[L signal.Scalar] struct {
	Offset L
}

// Bias outputs Left(Offset) + Right(input) in the promoted kind O. The pair
// P fixes the promotion at compile time; an unsupported (L, R) combination
// has no pair type and fails to compile.
type Bias[L, R signal.Scalar, O signal.Numeric, P promote.Pair[L, R, O]] struct {
	out O
}

func (b *Bias[L, R, O, P]) Process(p *BiasParams[L], _ block.Context, in R) O {
	off, v := promote.Apply[L, R, O, P](p.Offset, in)
	b.out = off + v
	return b.out
}

func (b *Bias[L, R, O, P]) Snapshot() signal.Data { return signal.ScalarData(b.out) }

// MatrixBias adds the promoted offset to every element of a matrix input.
type MatrixBias[L, R signal.Scalar, O signal.Numeric, P promote.Pair[L, R, O]] struct {
	out *signal.Matrix[O]
}

// NewMatrixBias sizes the output for a rows x cols input.
func NewMatrixBias[L, R signal.Scalar, O signal.Numeric, P promote.Pair[L, R, O]](rows, cols int) *MatrixBias[L, R, O, P] {
	mustPositive("rows", rows)
	mustPositive("cols", cols)
	return &MatrixBias[L, R, O, P]{out: signal.NewMatrix[O](rows, cols)}
}

func (b *MatrixBias[L, R, O, P]) Process(p *BiasParams[L], _ block.Context, in *signal.Matrix[R]) *signal.Matrix[O] {
	mustMatch("MatrixBias", b.out.Rows(), b.out.Cols(), in.Rows(), in.Cols())
	var pair P
	off := pair.Left(p.Offset)
	dst := b.out.Data()
	for i, v := range in.Data() {
		dst[i] = off + pair.Right(v)
	}
	return b.out
}

func (b *MatrixBias[L, R, O, P]) Snapshot() signal.Data { return signal.MatrixData(b.out) }
