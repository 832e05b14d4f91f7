package blocks

import (
	"strings"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// ArgMethod selects ArgMin or ArgMax.
type ArgMethod int

const (
	ArgMin ArgMethod = iota
	ArgMax
)

func (m ArgMethod) String() string {
	if m == ArgMax {
		return "Max"
	}
	return "Min"
}

// ArgMinMaxParams configures an ArgMinMax.
type ArgMinMaxParams struct {
	Method ArgMethod
}

// NewArgMinMaxParams parses "Min" or "Max" and panics with a ConfigError on
// anything else.
func NewArgMinMaxParams(method string) *ArgMinMaxParams {
	switch {
	case strings.EqualFold(method, "Min"):
		return &ArgMinMaxParams{Method: ArgMin}
	case strings.EqualFold(method, "Max"):
		return &ArgMinMaxParams{Method: ArgMax}
	}
	panic(block.NewConfigError(block.ErrCodeUnknownMethod, "method", "unknown arg method %q", method))
}

// ArgMinMax outputs the linear column-major index of the smallest or largest
// element. Ties resolve to the first minimum and the last maximum.
type ArgMinMax[T signal.Numeric] struct {
	out T
}

func (b *ArgMinMax[T]) Process(p *ArgMinMaxParams, _ block.Context, in *signal.Matrix[T]) T {
	data := in.Data()
	best := 0
	for i, v := range data {
		if v != v {
			block.PanicNaN("ArgMinMax")
		}
		switch {
		case p.Method == ArgMin && v < data[best]:
			best = i
		case p.Method == ArgMax && v >= data[best]:
			best = i
		}
	}
	b.out = T(best)
	return b.out
}

func (b *ArgMinMax[T]) Snapshot() signal.Data { return signal.ScalarData(b.out) }

// ScalarArgMinMax is the degenerate form for a scalar input; the only index
// is zero.
type ScalarArgMinMax[T signal.Numeric] struct{}

func (ScalarArgMinMax[T]) Process(_ *ArgMinMaxParams, _ block.Context, _ T) T { return 0 }
