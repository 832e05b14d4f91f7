// Package engine drives a block model one tick at a time.
//
// ARCHITECTURE:
//
// Single-Threaded Tick Loop:
// Each tick is one synchronous pass over a fixed block graph. The runtime
// reads the clock exactly once per tick and hands every block the same
// immutable Tick, so all blocks observe one instant:
// - Time() is identical for every block within a tick
// - Time() never decreases across ticks, even if the clock source jitters
// - Timestep() is absent on the first tick
//
// Pacing:
// Run sleeps between ticks to hold the fundamental timestep when driven by a
// SystemClock. A SimClock is advanced by exactly one fundamental timestep per
// tick instead, so simulations are deterministic and run as fast as possible.
//
// Cancellation is only observed between ticks; a tick in progress always
// completes. Blocks never block or sleep.
//
// Failure:
// A model step that returns an error, or a block that panics with a
// *block.PreconditionError, stops the loop with a *RuntimeError carrying the
// tick number and time.
package engine
