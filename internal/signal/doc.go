// Package signal provides the value types that may cross a block boundary.
//
// This package contains value definitions only. Every other internal package
// imports signal; signal imports nothing internal. This keeps the value model
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Scalar kinds form a closed set (see Kind); no other type is a Scalar
//   - Matrix storage is column-major and its shape never changes after construction
//   - The zero Matrix of any shape is all-bits-zero and needs no computation
//   - A Pass type fixes how a value crosses a boundary for the life of the program
//   - Nothing in the per-tick path allocates after a block has warmed up
package signal
