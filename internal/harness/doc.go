// Package harness runs block-diagram scenarios deterministically and checks
// their results.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: ramp_counter
//	description: "What this scenario validates"
//	timestep_ms: 500
//	ticks: 5
//	params:
//	  Ramp1: { rate: 2 }
//	inputs:
//	  - tick: 2
//	    values: [1.5, -2]
//	trace: [Ramp1, Counter1]
//	assertions:
//	  - type: final_value
//	    signal: Counter1
//	    expect: [5]
//	  - type: value_at
//	    tick: 3
//	    signal: Ramp1
//	    expect: [2]
//
// params uses the same schema as a diagram_params file. inputs are bus
// messages written before the given tick; topic defaults to the diagram's
// command topic and values are packed with its layout. trace selects the
// signals recorded each tick, in order; empty records every signal.
//
// # Assertion Types
//
//   - final_value: a signal's values after the last tick
//   - value_at: a signal's values at a tick
//   - trace_count: the number of recorded ticks
//   - config_error: the diagram fails to build with a block error code
//   - runtime_error: the run stops with an engine error code
//
// # Deterministic Testing
//
// Every scenario runs on a simulated clock advanced by exactly one timestep
// per tick, against a private message bus, so traces are identical across
// runs and can be compared with golden files (see RunWithGolden).
package harness
