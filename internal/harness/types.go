package harness

import "github.com/roach88/blockrt/internal/telemetry"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion held.
	Pass bool `json:"pass"`

	// Ticks is the number of ticks that completed.
	Ticks int64 `json:"ticks"`

	// Trace holds one record per completed tick, with the selected signals.
	Trace []telemetry.Record `json:"-"`

	// CSV is the trace rendered by the CSV logger.
	CSV []byte `json:"-"`

	// ConfigError is set when the diagram failed to build.
	ConfigError error `json:"-"`

	// RuntimeError is set when the run stopped on an error.
	RuntimeError error `json:"-"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []telemetry.Record{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Final returns the last record, or false if no tick completed.
func (r *Result) Final() (telemetry.Record, bool) {
	if len(r.Trace) == 0 {
		return telemetry.Record{}, false
	}
	return r.Trace[len(r.Trace)-1], true
}

// At returns the record of a 1-based tick.
func (r *Result) At(tick int64) (telemetry.Record, bool) {
	for _, rec := range r.Trace {
		if int64(rec.Tick) == tick {
			return rec, true
		}
	}
	return telemetry.Record{}, false
}
