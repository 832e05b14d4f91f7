// Package block defines the four block roles and the per-tick Context they
// run against.
//
// Every block exposes exactly one role method. Generated code (or a
// hand-wired model) calls each block once per tick in a fixed topological
// order, threading crossing values from outputs to inputs; see
// signal.Pass for how values cross.
//
// Roles:
//   - Generator: no signal input; a pure function of parameters and Time()
//   - Process: signal in, signal out; may keep private state
//   - Input: no signal input; data originates outside the tick and is
//     usually paired with a staleness flag
//   - Output: signal in, side effect out
//
// Parameters are passed by pointer and must not be modified by the block.
// Malformed parameters fail at construction (panic with *ConfigError); a
// constructed block never fails per tick except on documented numeric
// precondition violations (panic with *PreconditionError).
package block
