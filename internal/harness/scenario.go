package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario defines one deterministic run of the demo diagram and the checks
// applied to it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// TimestepMs is the fundamental timestep in milliseconds.
	TimestepMs float64 `yaml:"timestep_ms"`

	// Ticks is the number of ticks to run.
	Ticks int64 `yaml:"ticks"`

	// Params are diagram parameters, block name to parameter name to value.
	Params map[string]map[string]any `yaml:"params,omitempty"`

	// Inputs are bus messages delivered before their tick.
	Inputs []Input `yaml:"inputs,omitempty"`

	// Trace selects the recorded signals. Empty records all of them.
	Trace []string `yaml:"trace,omitempty"`

	// Assertions validate the trace and the outcome of the run.
	Assertions []Assertion `yaml:"assertions"`
}

// Input is one message written to the bus before tick Tick runs.
type Input struct {
	// Tick is the 1-based tick the message is visible to.
	Tick int64 `yaml:"tick"`

	// Topic defaults to the diagram's command topic.
	Topic string `yaml:"topic,omitempty"`

	// Values are packed with the subscribed layout.
	Values []float64 `yaml:"values"`
}

// Assertion validates the trace or the outcome of the run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final_value": Signal equals Expect after the last tick
	// - "value_at": Signal equals Expect at Tick
	// - "trace_count": the trace holds Count records
	// - "config_error": construction failed with Code
	// - "runtime_error": the run stopped with Code
	Type string `yaml:"type"`

	// Signal is the recorded field name (final_value, value_at).
	Signal string `yaml:"signal,omitempty"`

	// Tick is the 1-based tick (value_at).
	Tick int64 `yaml:"tick,omitempty"`

	// Expect is the expected column-major values (final_value, value_at).
	Expect []float64 `yaml:"expect,omitempty"`

	// Tolerance is the allowed absolute difference per value.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Count is the expected number of records (trace_count).
	Count int `yaml:"count,omitempty"`

	// Code is the expected error code (config_error, runtime_error).
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalValue   = "final_value"
	AssertValueAt      = "value_at"
	AssertTraceCount   = "trace_count"
	AssertConfigError  = "config_error"
	AssertRuntimeError = "runtime_error"
)

// Timestep returns the scenario's fundamental timestep.
func (s *Scenario) Timestep() time.Duration {
	return time.Duration(s.TimestepMs * float64(time.Millisecond))
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if !(s.TimestepMs > 0) {
		return fmt.Errorf("timestep_ms must be positive")
	}
	if s.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, in := range s.Inputs {
		if in.Tick < 1 || in.Tick > s.Ticks {
			return fmt.Errorf("inputs[%d]: tick must be in 1..%d", i, s.Ticks)
		}
		if len(in.Values) == 0 {
			return fmt.Errorf("inputs[%d]: values are required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Ticks); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, ticks int64) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalValue:
		if a.Signal == "" || len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: signal and expect are required for final_value", index)
		}
	case AssertValueAt:
		if a.Signal == "" || len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: signal and expect are required for value_at", index)
		}
		if a.Tick < 1 || a.Tick > ticks {
			return fmt.Errorf("assertions[%d]: tick must be in 1..%d for value_at", index, ticks)
		}
	case AssertTraceCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertConfigError, AssertRuntimeError:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Tolerance < 0 {
		return fmt.Errorf("assertions[%d]: tolerance must be non-negative", index)
	}
	return nil
}
