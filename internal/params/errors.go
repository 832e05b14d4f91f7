package params

import (
	"errors"
	"fmt"
)

// Error codes for parameter loading.
const (
	ErrCodeReadFailed        = "READ_FAILED"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeParseFailed       = "PARSE_FAILED"
	ErrCodeSchemaViolation   = "SCHEMA_VIOLATION"
	ErrCodeInvalidEnv        = "INVALID_ENV"
)

// LoadError describes a parameter file or environment that could not be
// loaded.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError returns true if err is, or wraps, a LoadError with code.
func IsLoadError(err error, code string) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == code
}
