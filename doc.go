// Package dstring provides immutable, reference-counted strings and a
// copy-on-write Builder for constructing them, ported to pure Go from the
// single-header C library dynamic_string.h.
//
// A String handle aliases a single block holding {reference count, length,
// payload, terminator}. Handles are shared with Retain and disposed of with
// Release; the block is freed exactly when its last reference goes away.
// Transformations never mutate a block: they allocate a new one, or retain
// an input when the result would be byte-identical.
//
// A Builder accumulates content in the same block layout, growing
// geometrically. Each mutation first passes a uniqueness gate: if the block
// is aliased by any other handle, the payload is cloned before a byte is
// written, so shared data can never be mutated through a Builder. Freezing
// with ToString transfers the builder's reference out wholesale, leaving the
// returned handle exclusively owned and the builder empty.
//
// Blocks are allocated through an Allocator, which tracks statistics and can
// optionally make all reference counting atomic (CreateAtomicRefCounts) so
// that Retain/Release are safe across goroutines. Nothing else is
// synchronized: concurrent Builder use, like concurrent payload writes, is
// the caller's bug, not the library's.
package dstring
