package blocks

import (
	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// TransposeParams is empty.
type TransposeParams struct{}

// Transpose outputs the cols x rows transpose of its input.
type Transpose[T signal.Scalar] struct {
	out *signal.Matrix[T]
}

// NewTranspose sizes the block for a rows x cols input.
func NewTranspose[T signal.Scalar](rows, cols int) *Transpose[T] {
	mustPositive("rows", rows)
	mustPositive("cols", cols)
	return &Transpose[T]{out: signal.NewMatrix[T](cols, rows)}
}

func (b *Transpose[T]) Process(_ *TransposeParams, _ block.Context, in *signal.Matrix[T]) *signal.Matrix[T] {
	mustMatch("Transpose", b.out.Cols(), b.out.Rows(), in.Rows(), in.Cols())
	for r := 0; r < in.Rows(); r++ {
		for c := 0; c < in.Cols(); c++ {
			b.out.Set(c, r, in.At(r, c))
		}
	}
	return b.out
}

func (b *Transpose[T]) Snapshot() signal.Data { return signal.MatrixData(b.out) }
