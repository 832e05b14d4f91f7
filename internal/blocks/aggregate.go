package blocks

import (
	"slices"
	"strings"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// AggregateMethod selects the reduction an Aggregate applies.
type AggregateMethod int

const (
	AggregateSum AggregateMethod = iota
	AggregateMean
	AggregateMedian
	AggregateMin
	AggregateMax
)

var aggregateMethods = []string{"Sum", "Mean", "Median", "Min", "Max"}

func (m AggregateMethod) String() string {
	if m < 0 || int(m) >= len(aggregateMethods) {
		return "Unknown"
	}
	return aggregateMethods[m]
}

// ordering reports whether the method compares elements.
func (m AggregateMethod) ordering() bool {
	return m == AggregateMedian || m == AggregateMin || m == AggregateMax
}

// ParseAggregateMethod parses a method name, case-insensitively.
func ParseAggregateMethod(s string) (AggregateMethod, error) {
	for i, name := range aggregateMethods {
		if strings.EqualFold(s, name) {
			return AggregateMethod(i), nil
		}
	}
	return 0, block.NewConfigError(block.ErrCodeUnknownMethod, "method", "unknown aggregate method %q", s)
}

// AggregateParams configures an Aggregate.
type AggregateParams struct {
	Method AggregateMethod
}

// NewAggregateParams parses method and panics with a ConfigError if it is
// not one of Sum, Mean, Median, Min or Max.
func NewAggregateParams(method string) *AggregateParams {
	m, err := ParseAggregateMethod(method)
	if err != nil {
		panic(err)
	}
	return &AggregateParams{Method: m}
}

// Aggregate reduces every element of a matrix to one scalar. Median of an
// even count averages the two middle elements. NaN in an ordering reduction
// panics with a PreconditionError.
type Aggregate[T signal.Float] struct {
	scratch []T
	out     T
}

func (b *Aggregate[T]) Process(p *AggregateParams, _ block.Context, in *signal.Matrix[T]) T {
	data := in.Data()
	if p.Method.ordering() {
		for _, v := range data {
			if v != v {
				block.PanicNaN("Aggregate")
			}
		}
	}
	switch p.Method {
	case AggregateSum:
		b.out = sum(data)
	case AggregateMean:
		b.out = sum(data) / T(len(data))
	case AggregateMedian:
		b.out = b.median(data)
	case AggregateMin:
		b.out = slices.Min(data)
	case AggregateMax:
		b.out = slices.Max(data)
	}
	return b.out
}

func (b *Aggregate[T]) median(data []T) T {
	b.scratch = append(b.scratch[:0], data...)
	slices.Sort(b.scratch)
	mid := len(b.scratch) / 2
	if len(b.scratch)%2 == 0 {
		return (b.scratch[mid-1] + b.scratch[mid]) / 2
	}
	return b.scratch[mid]
}

func (b *Aggregate[T]) Snapshot() signal.Data { return signal.ScalarData(b.out) }

func sum[T signal.Numeric](data []T) T {
	var total T
	for _, v := range data {
		total += v
	}
	return total
}
