// Package store provides SQLite-backed durable storage for telemetry runs.
//
// A run is one execution of a model: its identifier (UUIDv7), the model
// name, the fundamental timestep and the diagram parameters it was started
// with. Samples are the values blocks held at a logged tick, keyed by
// (run, tick, signal name).
//
// # Ordering
//
//   - Samples are ordered by tick, never by wall time, so a replayed
//     simulation reads back identically.
//   - Queries use ORDER BY tick ASC, name COLLATE BINARY ASC.
//   - Runs are ordered by id; UUIDv7 ids sort by creation time.
//
// # Idempotency
//
// Writes use ON CONFLICT DO NOTHING: logging the same (run, tick, name)
// twice keeps the first sample.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
