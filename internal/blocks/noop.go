package blocks

import (
	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// NoOpParams is empty.
type NoOpParams struct{}

// NoOpInput stands in for hardware input on targets that lack it and always
// reads the zero value.
type NoOpInput[T signal.Scalar] struct{}

func (NoOpInput[T]) Input(_ *NoOpParams, _ block.Context) T { return signal.Zero[T]() }

// NoOpOutput accepts and discards a value.
type NoOpOutput[T any] struct{}

func (NoOpOutput[T]) Output(_ *NoOpParams, _ block.Context, _ T) {}
