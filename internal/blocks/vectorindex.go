package blocks

import (
	"strconv"
	"strings"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// VectorIndexParams holds the linear indices a VectorIndex selects.
type VectorIndexParams struct {
	Indices []int
}

// NewVectorIndexParams parses index strings. Each string may carry a
// type prefix ("Scalar:3"); only the part after the last colon is read.
// A non-integer index panics with a ConfigError.
func NewVectorIndexParams(indices []string) *VectorIndexParams {
	p := &VectorIndexParams{Indices: make([]int, len(indices))}
	for i, s := range indices {
		if j := strings.LastIndexByte(s, ':'); j >= 0 {
			s = s[j+1:]
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			block.PanicConfig(block.ErrCodeInvalidParameter, "indices", "index %d: %q is not a non-negative integer", i, indices[i])
		}
		p.Indices[i] = n
	}
	return p
}

// VectorIndex picks elements of a matrix by linear column-major index. An
// index past the end of the input yields the zero value.
type VectorIndex[T signal.Scalar] struct {
	out []T
}

func (b *VectorIndex[T]) Process(p *VectorIndexParams, _ block.Context, in *signal.Matrix[T]) []T {
	if cap(b.out) < len(p.Indices) {
		b.out = make([]T, len(p.Indices))
	}
	b.out = b.out[:len(p.Indices)]
	data := in.Data()
	for i, idx := range p.Indices {
		if idx < len(data) {
			b.out[i] = data[idx]
		} else {
			b.out[i] = signal.Zero[T]()
		}
	}
	return b.out
}

// Snapshot records the selected values as a 1 x N row.
func (b *VectorIndex[T]) Snapshot() signal.Data {
	if len(b.out) == 0 {
		return signal.ScalarData(signal.Zero[T]())
	}
	return signal.MatrixData(signal.FromRows([][]T{b.out}))
}
