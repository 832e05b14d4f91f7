package engine

import (
	"errors"
	"fmt"
	"time"
)

// RuntimeError represents a failure that stopped the tick loop.
//
// Runtime errors include:
//   - Step failed: the model returned an error from a tick
//   - Precondition violated: a block panicked with *block.PreconditionError
//
// RuntimeError includes the tick number and time for diagnostics.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Tick is the 1-based tick number that failed.
	Tick int64

	// Time is the tick's Context time.
	Time time.Duration

	// Err is the underlying error, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeStepFailed indicates the model returned an error.
	ErrCodeStepFailed RuntimeErrorCode = "STEP_FAILED"

	// ErrCodePrecondition indicates a block saw data outside its contract.
	ErrCodePrecondition RuntimeErrorCode = "PRECONDITION_VIOLATED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (tick=%d, time=%s): %v", e.Code, e.Message, e.Tick, e.Time, e.Err)
	}
	return fmt.Sprintf("%s: %s (tick=%d, time=%s)", e.Code, e.Message, e.Tick, e.Time)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsPreconditionError returns true if err is a precondition runtime error.
// Uses errors.As to handle wrapped errors.
func IsPreconditionError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodePrecondition
	}
	return false
}

// NewStepError creates a RuntimeError for a failed model step.
func NewStepError(tick Tick, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeStepFailed,
		Message: "model step failed",
		Tick:    tick.Seq(),
		Time:    tick.Time(),
		Err:     err,
	}
}

// NewPreconditionError creates a RuntimeError for a block precondition panic.
func NewPreconditionError(tick Tick, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodePrecondition,
		Message: "block precondition violated",
		Tick:    tick.Seq(),
		Time:    tick.Time(),
		Err:     err,
	}
}
