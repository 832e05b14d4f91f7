package harness

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/engine"
	"github.com/roach88/blockrt/internal/signal"
	"github.com/roach88/blockrt/internal/telemetry"
)

// traceContext is how many trailing records an AssertionError prints.
const traceContext = 5

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string             // Assertion type for categorization
	Expected string             // Human-readable expected outcome
	Actual   string             // Human-readable actual outcome
	Trace    []telemetry.Record // Trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		start := max(0, len(e.Trace)-traceContext)
		fmt.Fprintf(&buf, "\nTrace (last %d of %d ticks):\n", len(e.Trace)-start, len(e.Trace))
		for _, rec := range e.Trace[start:] {
			fmt.Fprintf(&buf, "  [%d] t=%s", rec.Tick, signal.FormatFloat(rec.AppTime.Seconds()))
			for _, f := range rec.Fields {
				fmt.Fprintf(&buf, " %s=%s", f.Name, f.Data.JSON())
			}
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages. A config or runtime error that no assertion expects is
// itself a failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	expectConfig, expectRuntime := false, false

	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertFinalValue:
			err = assertFinalValue(result, a)
		case AssertValueAt:
			err = assertValueAt(result, a)
		case AssertTraceCount:
			err = assertTraceCount(result, a)
		case AssertConfigError:
			expectConfig = true
			err = assertConfigError(result, a)
		case AssertRuntimeError:
			expectRuntime = true
			err = assertRuntimeError(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	if result.ConfigError != nil && !expectConfig {
		errs = append(errs, fmt.Sprintf("unexpected config error: %v", result.ConfigError))
	}
	if result.RuntimeError != nil && !expectRuntime {
		errs = append(errs, fmt.Sprintf("unexpected runtime error: %v", result.RuntimeError))
	}
	return errs
}

func assertFinalValue(result *Result, a Assertion) error {
	rec, ok := result.Final()
	if !ok {
		return &AssertionError{
			Type:     AssertFinalValue,
			Expected: fmt.Sprintf("%s = %v", a.Signal, a.Expect),
			Actual:   "no tick completed",
		}
	}
	return checkValue(AssertFinalValue, rec, a, result.Trace)
}

func assertValueAt(result *Result, a Assertion) error {
	rec, ok := result.At(a.Tick)
	if !ok {
		return &AssertionError{
			Type:     AssertValueAt,
			Expected: fmt.Sprintf("%s = %v at tick %d", a.Signal, a.Expect, a.Tick),
			Actual:   fmt.Sprintf("tick %d not in trace", a.Tick),
			Trace:    result.Trace,
		}
	}
	return checkValue(AssertValueAt, rec, a, result.Trace)
}

func checkValue(typ string, rec telemetry.Record, a Assertion, trace []telemetry.Record) error {
	for _, f := range rec.Fields {
		if f.Name != a.Signal {
			continue
		}
		if valuesEqual(a.Expect, f.Data.Values, a.Tolerance) {
			return nil
		}
		return &AssertionError{
			Type:     typ,
			Expected: fmt.Sprintf("%s = %v at tick %d", a.Signal, a.Expect, rec.Tick),
			Actual:   fmt.Sprintf("%s = %v", a.Signal, f.Data.Values),
			Trace:    trace,
		}
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("signal %s in trace", a.Signal),
		Actual:   fmt.Sprintf("recorded signals %v", rec.Names()),
	}
}

func assertTraceCount(result *Result, a Assertion) error {
	if len(result.Trace) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%d ticks", a.Count),
		Actual:   fmt.Sprintf("%d ticks", len(result.Trace)),
		Trace:    result.Trace,
	}
}

func assertConfigError(result *Result, a Assertion) error {
	var ce *block.ConfigError
	if errors.As(result.ConfigError, &ce) && string(ce.Code) == a.Code {
		return nil
	}
	return &AssertionError{
		Type:     AssertConfigError,
		Expected: "config error " + a.Code,
		Actual:   describe(result.ConfigError),
	}
}

func assertRuntimeError(result *Result, a Assertion) error {
	var re *engine.RuntimeError
	if errors.As(result.RuntimeError, &re) && string(re.Code) == a.Code {
		return nil
	}
	return &AssertionError{
		Type:     AssertRuntimeError,
		Expected: "runtime error " + a.Code,
		Actual:   describe(result.RuntimeError),
		Trace:    result.Trace,
	}
}

func describe(err error) string {
	if err == nil {
		return "no error"
	}
	return err.Error()
}

// valuesEqual compares element-wise within tol. NaN matches NaN.
func valuesEqual(expected, actual []float64, tol float64) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		e, a := expected[i], actual[i]
		if math.IsNaN(e) || math.IsNaN(a) {
			if math.IsNaN(e) != math.IsNaN(a) {
				return false
			}
			continue
		}
		if math.Abs(e-a) > tol {
			return false
		}
	}
	return true
}
