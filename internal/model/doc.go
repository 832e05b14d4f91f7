// Package model holds hand-wired block diagrams.
//
// A diagram owns its blocks and their parameters, and calls every block once
// per tick in dependency order. Parameters are resolved from a
// params.Diagram when the diagram is built, so a bad parameter fails
// construction rather than a tick.
//
// Demo is the reference diagram the CLI runs and the harness tests:
//
//	Ramp1 -> Bias1 --+--> Compare1 -> Counter1 <- Reset1
//	Sine1 -----------+
//	(Bias1, Counter1) -> Pack1 -> Transmit1
//	                         \--> Unpack1 -> Publish1 (bus)
//	(bus) Subscribe1 -> Delay1
package model
