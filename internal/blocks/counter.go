package blocks

import (
	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// CounterParams is empty; counters have nothing to configure.
type CounterParams struct{}

// Counter counts ticks on which its value input is truthy. A truthy reset
// input wins over the value and sets the count to zero on that tick.
type Counter[I, R signal.Scalar] struct {
	count float64
}

var _ block.Process[CounterParams, signal.Tuple2[float64, bool], float64] = (*Counter[float64, bool])(nil)

func (b *Counter[I, R]) Process(_ *CounterParams, _ block.Context, in signal.Tuple2[I, R]) float64 {
	switch {
	case signal.IsTruthy(in.V1):
		b.count = 0
	case signal.IsTruthy(in.V0):
		b.count++
	}
	return b.count
}

func (b *Counter[I, R]) Snapshot() signal.Data { return signal.ScalarData(b.count) }

// MatrixCounter counts element-wise over a matrix input. A truthy scalar
// reset clears every element.
type MatrixCounter[I, R signal.Scalar] struct {
	counts *signal.Matrix[float64]
}

// NewMatrixCounter sizes the counter for a rows x cols input.
func NewMatrixCounter[I, R signal.Scalar](rows, cols int) *MatrixCounter[I, R] {
	mustPositive("rows", rows)
	mustPositive("cols", cols)
	return &MatrixCounter[I, R]{counts: signal.NewMatrix[float64](rows, cols)}
}

func (b *MatrixCounter[I, R]) Process(_ *CounterParams, _ block.Context, in signal.Tuple2[*signal.Matrix[I], R]) *signal.Matrix[float64] {
	mustMatch("MatrixCounter", b.counts.Rows(), b.counts.Cols(), in.V0.Rows(), in.V0.Cols())
	if signal.IsTruthy(in.V1) {
		b.counts.Fill(0)
		return b.counts
	}
	counts := b.counts.Data()
	for i, v := range in.V0.Data() {
		if signal.IsTruthy(v) {
			counts[i]++
		}
	}
	return b.counts
}

func (b *MatrixCounter[I, R]) Snapshot() signal.Data { return signal.MatrixData(b.counts) }

// MatrixResetCounter counts element-wise with an element-wise reset of the
// same shape as the value input.
type MatrixResetCounter[I, R signal.Scalar] struct {
	counts *signal.Matrix[float64]
}

// NewMatrixResetCounter sizes the counter for a rows x cols input.
func NewMatrixResetCounter[I, R signal.Scalar](rows, cols int) *MatrixResetCounter[I, R] {
	mustPositive("rows", rows)
	mustPositive("cols", cols)
	return &MatrixResetCounter[I, R]{counts: signal.NewMatrix[float64](rows, cols)}
}

func (b *MatrixResetCounter[I, R]) Process(_ *CounterParams, _ block.Context, in signal.Tuple2[*signal.Matrix[I], *signal.Matrix[R]]) *signal.Matrix[float64] {
	rows, cols := b.counts.Rows(), b.counts.Cols()
	mustMatch("MatrixResetCounter", rows, cols, in.V0.Rows(), in.V0.Cols())
	mustMatch("MatrixResetCounter", rows, cols, in.V1.Rows(), in.V1.Cols())
	counts := b.counts.Data()
	reset := in.V1.Data()
	for i, v := range in.V0.Data() {
		switch {
		case signal.IsTruthy(reset[i]):
			counts[i] = 0
		case signal.IsTruthy(v):
			counts[i]++
		}
	}
	return b.counts
}

func (b *MatrixResetCounter[I, R]) Snapshot() signal.Data { return signal.MatrixData(b.counts) }
