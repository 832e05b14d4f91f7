// Package blocks is the standard block library.
//
// Each block is a struct owning its last output plus any private state, and
// implements exactly one role from package block. Parameters live in a
// separate XxxParams struct built once, before the tick loop, by a
// NewXxxParams constructor that panics with *block.ConfigError on malformed
// input.
//
// Outputs that are matrices, slices or byte strings are views into the
// block's own storage, valid until the block's next call. Blocks never
// allocate in their role method once the first call has sized their storage.
package blocks
