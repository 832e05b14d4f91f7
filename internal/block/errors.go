package block

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes block errors.
type ErrorCode string

const (
	// ErrCodeInvalidParameter indicates a parameter value could not be parsed.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"

	// ErrCodeUnknownMethod indicates an enumerated method name is not recognized.
	ErrCodeUnknownMethod ErrorCode = "UNKNOWN_METHOD"

	// ErrCodeShapeMismatch indicates a parameter's size differs from the
	// signal shape the block was built for.
	ErrCodeShapeMismatch ErrorCode = "SHAPE_MISMATCH"

	// ErrCodeInvalidCodec indicates a byte field specification is malformed.
	ErrCodeInvalidCodec ErrorCode = "INVALID_CODEC"

	// ErrCodeNaNOrdering indicates NaN reached an ordering operation.
	ErrCodeNaNOrdering ErrorCode = "NAN_ORDERING"
)

// ConfigError is raised while constructing a block from its parameters.
// It is fatal: a malformed configuration never reaches the tick loop.
type ConfigError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Block names the block being configured, when known.
	Block string

	// Param names the offending parameter, when known.
	Param string

	// Message is a human-readable description.
	Message string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Block != "" && e.Param != "":
		return fmt.Sprintf("%s: %s (block=%s, param=%s)", e.Code, e.Message, e.Block, e.Param)
	case e.Param != "":
		return fmt.Sprintf("%s: %s (param=%s)", e.Code, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// PreconditionError is raised inside a tick when a block receives data
// outside its declared contract.
type PreconditionError struct {
	Code    ErrorCode
	Block   string
	Message string
}

func (e *PreconditionError) Error() string {
	if e.Block != "" {
		return fmt.Sprintf("%s: %s (block=%s)", e.Code, e.Message, e.Block)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfigError creates a ConfigError.
func NewConfigError(code ErrorCode, param, format string, args ...any) *ConfigError {
	return &ConfigError{Code: code, Param: param, Message: fmt.Sprintf(format, args...)}
}

// PanicConfig aborts construction with a ConfigError.
func PanicConfig(code ErrorCode, param, format string, args ...any) {
	panic(NewConfigError(code, param, format, args...))
}

// PanicNaN aborts a tick because NaN reached an ordering operation.
func PanicNaN(blockName string) {
	panic(&PreconditionError{Code: ErrCodeNaNOrdering, Block: blockName, Message: "NaN in ordering operation"})
}

// IsConfigError returns true if err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsPreconditionError returns true if err is, or wraps, a PreconditionError.
func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// Recover converts a ConfigError or PreconditionError panic into an error.
// Other panics are re-raised. Use it at startup boundaries:
//
//	defer block.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case *ConfigError:
		*err = e
	case *PreconditionError:
		*err = e
	default:
		panic(r)
	}
}
