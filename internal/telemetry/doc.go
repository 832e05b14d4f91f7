// Package telemetry samples model signals at a configured rate and hands
// them to loggers.
//
// A Record is the set of named signal values at one tick. Loggers gate
// themselves on app time: ShouldLog reports whether a logger's period has
// elapsed since its last successful log, and Log always writes. Building a
// Record allocates, so callers check ShouldLog first (see Emit).
//
// Loggers:
//   - CSVLogger writes a header line then one row per record
//   - DatagramLogger sends canonical CBOR datagrams to a telemetry socket
//   - StoreLogger writes samples to the SQLite run store
//   - Multi fans one record out to several loggers, each gated on its own
package telemetry
