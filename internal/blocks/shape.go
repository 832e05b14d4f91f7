package blocks

import (
	"fmt"

	"github.com/roach88/blockrt/internal/block"
)

// mustMatch panics with a PreconditionError when an input's shape differs
// from the shape a block was sized for.
func mustMatch(name string, rows, cols, gotRows, gotCols int) {
	if rows == gotRows && cols == gotCols {
		return
	}
	panic(&block.PreconditionError{
		Code:    block.ErrCodeShapeMismatch,
		Block:   name,
		Message: fmt.Sprintf("input is %dx%d, block was built for %dx%d", gotRows, gotCols, rows, cols),
	})
}

func mustPositive(param string, n int) {
	if n <= 0 {
		block.PanicConfig(block.ErrCodeInvalidParameter, param, "must be positive, got %d", n)
	}
}
