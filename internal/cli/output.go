package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/engine"
	"github.com/roach88/blockrt/internal/params"
)

// Exit codes shared by every command.
const (
	ExitSuccess      = 0 // ran, validated or passed
	ExitFailure      = 1 // the diagram failed to build, stopped or did not pass
	ExitCommandError = 2 // the command itself could not proceed (paths, flags, database)
)

// ErrCodeGeneric is reported for errors that carry no code of their own.
const ErrCodeGeneric = "E001"

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err, or ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode returns the code of the innermost domain error in err: a block
// configuration or precondition code, an engine runtime code or a params
// load code. Other errors map to ErrCodeGeneric.
func ErrorCode(err error) string {
	var (
		ce *block.ConfigError
		pe *block.PreconditionError
		re *engine.RuntimeError
		le *params.LoadError
	)
	switch {
	case errors.As(err, &ce):
		return string(ce.Code)
	case errors.As(err, &re):
		return string(re.Code)
	case errors.As(err, &pe):
		return string(pe.Code)
	case errors.As(err, &le):
		return le.Code
	}
	return ErrCodeGeneric
}

// ErrorLocation says where in the diagram, file or run an error arose.
type ErrorLocation struct {
	Block string  `json:"block,omitempty"`
	Param string  `json:"param,omitempty"`
	Path  string  `json:"path,omitempty"`
	Tick  int64   `json:"tick,omitempty"`
	Time  float64 `json:"time_s,omitempty"`
}

// Locate extracts an ErrorLocation from err, or nil when err has none.
func Locate(err error) *ErrorLocation {
	var (
		ce *block.ConfigError
		re *engine.RuntimeError
		le *params.LoadError
	)
	var loc ErrorLocation
	switch {
	case errors.As(err, &ce):
		loc = ErrorLocation{Block: ce.Block, Param: ce.Param}
	case errors.As(err, &re):
		loc = ErrorLocation{Tick: re.Tick, Time: re.Time.Seconds()}
		var pe *block.PreconditionError
		if errors.As(err, &pe) {
			loc.Block = pe.Block
		}
	case errors.As(err, &le):
		loc = ErrorLocation{Path: le.Path}
	}
	if loc == (ErrorLocation{}) {
		return nil
	}
	return &loc
}

// OutputFormatter writes command results as JSON or text.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics; keeps JSON on Writer parseable
	Verbose   bool
}

// CLIResponse is the JSON envelope every command writes.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
	RunID  string    `json:"run_id,omitempty"`
}

// CLIError is the error part of a CLIResponse.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewCLIError classifies err. Details carry its location when known.
func NewCLIError(err error) *CLIError {
	e := &CLIError{Code: ErrorCode(err), Message: err.Error()}
	if loc := Locate(err); loc != nil {
		e.Details = loc
	}
	return e
}

// Success writes data.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error writes err with its domain code. In text form the location is
// shown only when verbose.
func (f *OutputFormatter) Error(err error) error {
	ce := NewCLIError(err)
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: ce})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", ce.Code, ce.Message)
	if loc, ok := ce.Details.(*ErrorLocation); ok && f.Verbose {
		fmt.Fprintf(f.Writer, "  at %s\n", loc)
	}
	return nil
}

// VerboseLog writes a diagnostic line when verbose, to ErrWriter if set.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

func (l *ErrorLocation) String() string {
	switch {
	case l.Tick > 0 && l.Block != "":
		return fmt.Sprintf("%s, tick %d (t=%gs)", l.Block, l.Tick, l.Time)
	case l.Tick > 0:
		return fmt.Sprintf("tick %d (t=%gs)", l.Tick, l.Time)
	case l.Block != "" && l.Param != "":
		return l.Block + "." + l.Param
	case l.Block != "":
		return l.Block
	case l.Param != "":
		return l.Param
	}
	return l.Path
}
