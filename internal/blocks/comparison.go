package blocks

import (
	"strings"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// ComparisonOp is one of the six relational operators.
type ComparisonOp int

const (
	Equal ComparisonOp = iota
	NotEqual
	GreaterThan
	GreaterOrEqual
	LessThan
	LessOrEqual
)

var comparisonOps = []string{"Equal", "NotEqual", "GreaterThan", "GreaterOrEqual", "LessThan", "LessOrEqual"}

func (op ComparisonOp) String() string {
	if op < 0 || int(op) >= len(comparisonOps) {
		return "Unknown"
	}
	return comparisonOps[op]
}

// ParseComparisonOp parses an operator name, case-insensitively.
func ParseComparisonOp(s string) (ComparisonOp, error) {
	for i, name := range comparisonOps {
		if strings.EqualFold(s, name) {
			return ComparisonOp(i), nil
		}
	}
	return 0, block.NewConfigError(block.ErrCodeUnknownMethod, "comparison_type", "unknown comparison %q", s)
}

// ComparisonParams configures every comparison block.
type ComparisonParams struct {
	Op ComparisonOp
}

// NewComparisonParams parses op and panics with a ConfigError if it is not
// a known operator.
func NewComparisonParams(op string) *ComparisonParams {
	parsed, err := ParseComparisonOp(op)
	if err != nil {
		panic(err)
	}
	return &ComparisonParams{Op: parsed}
}

// compare evaluates a OP b as 1 or 0. Equal and NotEqual follow IEEE rules
// for NaN; the ordering operators panic on it.
func compare[T signal.Numeric](op ComparisonOp, a, b T) T {
	var r bool
	switch op {
	case Equal:
		r = a == b
	case NotEqual:
		r = a != b
	default:
		if a != a || b != b {
			block.PanicNaN("Comparison")
		}
		switch op {
		case GreaterThan:
			r = a > b
		case GreaterOrEqual:
			r = a >= b
		case LessThan:
			r = a < b
		case LessOrEqual:
			r = a <= b
		}
	}
	if r {
		return 1
	}
	return 0
}

// Comparison compares two scalars.
type Comparison[T signal.Numeric] struct {
	out T
}

func (b *Comparison[T]) Process(p *ComparisonParams, _ block.Context, in signal.Tuple2[T, T]) T {
	b.out = compare(p.Op, in.V0, in.V1)
	return b.out
}

func (b *Comparison[T]) Snapshot() signal.Data { return signal.ScalarData(b.out) }

// MatrixComparison compares two matrices of the same shape element-wise.
type MatrixComparison[T signal.Numeric] struct {
	out *signal.Matrix[T]
}

// NewMatrixComparison sizes the output for rows x cols operands.
func NewMatrixComparison[T signal.Numeric](rows, cols int) *MatrixComparison[T] {
	mustPositive("rows", rows)
	mustPositive("cols", cols)
	return &MatrixComparison[T]{out: signal.NewMatrix[T](rows, cols)}
}

func (b *MatrixComparison[T]) Process(p *ComparisonParams, _ block.Context, in signal.Tuple2[*signal.Matrix[T], *signal.Matrix[T]]) *signal.Matrix[T] {
	rows, cols := b.out.Rows(), b.out.Cols()
	mustMatch("MatrixComparison", rows, cols, in.V0.Rows(), in.V0.Cols())
	mustMatch("MatrixComparison", rows, cols, in.V1.Rows(), in.V1.Cols())
	dst, rhs := b.out.Data(), in.V1.Data()
	for i, v := range in.V0.Data() {
		dst[i] = compare(p.Op, v, rhs[i])
	}
	return b.out
}

func (b *MatrixComparison[T]) Snapshot() signal.Data { return signal.MatrixData(b.out) }

// ScalarMatrixComparison evaluates s OP m[i] for every element.
type ScalarMatrixComparison[T signal.Numeric] struct {
	out *signal.Matrix[T]
}

// NewScalarMatrixComparison sizes the output for a rows x cols matrix operand.
func NewScalarMatrixComparison[T signal.Numeric](rows, cols int) *ScalarMatrixComparison[T] {
	mustPositive("rows", rows)
	mustPositive("cols", cols)
	return &ScalarMatrixComparison[T]{out: signal.NewMatrix[T](rows, cols)}
}

func (b *ScalarMatrixComparison[T]) Process(p *ComparisonParams, _ block.Context, in signal.Tuple2[T, *signal.Matrix[T]]) *signal.Matrix[T] {
	mustMatch("ScalarMatrixComparison", b.out.Rows(), b.out.Cols(), in.V1.Rows(), in.V1.Cols())
	dst := b.out.Data()
	for i, v := range in.V1.Data() {
		dst[i] = compare(p.Op, in.V0, v)
	}
	return b.out
}

func (b *ScalarMatrixComparison[T]) Snapshot() signal.Data { return signal.MatrixData(b.out) }

// MatrixScalarComparison evaluates m[i] OP s for every element.
type MatrixScalarComparison[T signal.Numeric] struct {
	out *signal.Matrix[T]
}

// NewMatrixScalarComparison sizes the output for a rows x cols matrix operand.
func NewMatrixScalarComparison[T signal.Numeric](rows, cols int) *MatrixScalarComparison[T] {
	mustPositive("rows", rows)
	mustPositive("cols", cols)
	return &MatrixScalarComparison[T]{out: signal.NewMatrix[T](rows, cols)}
}

func (b *MatrixScalarComparison[T]) Process(p *ComparisonParams, _ block.Context, in signal.Tuple2[*signal.Matrix[T], T]) *signal.Matrix[T] {
	mustMatch("MatrixScalarComparison", b.out.Rows(), b.out.Cols(), in.V0.Rows(), in.V0.Cols())
	dst := b.out.Data()
	for i, v := range in.V0.Data() {
		dst[i] = compare(p.Op, v, in.V1)
	}
	return b.out
}

func (b *MatrixScalarComparison[T]) Snapshot() signal.Data { return signal.MatrixData(b.out) }
