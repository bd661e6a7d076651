package dstring

import "github.com/vkngwrapper/arsenal/dstring/codec"

// Builder incrementally constructs string content in a single growable block
// that shares the String block layout, so that freezing the result into a
// String costs no copy.
//
// A Builder owns at most one block at a time. Every mutating operation runs
// the same protocol, in order: the uniqueness gate (clone the payload first
// if any other handle aliases the block), the capacity gate (geometric
// growth if the write does not fit), and only then the write itself. The
// gates guarantee that a write can never be observed through another handle.
//
// Builders are not safe for concurrent use from multiple goroutines; only
// Retain/Release on the frozen results are, and only under
// CreateAtomicRefCounts.
//
// The zero Builder is valid and draws its first block from the Default
// allocator on first use.
type Builder struct {
	block    *block
	capacity int

	parentAllocator *Allocator
}

// NewBuilder creates a Builder with the allocator's default initial capacity.
func (a *Allocator) NewBuilder() *Builder {
	return a.NewBuilderWithCapacity(0)
}

// NewBuilderWithCapacity creates a Builder that can hold capacity payload
// bytes before its first growth. Non-positive capacities select the
// allocator's default.
func (a *Allocator) NewBuilderWithCapacity(capacity int) *Builder {
	if capacity <= 0 {
		capacity = a.builderCapacity
	}

	return &Builder{
		block:           a.allocateBlock(0, capacity),
		capacity:        capacity,
		parentAllocator: a,
	}
}

// NewBuilder creates a Builder on the Default allocator.
func NewBuilder() *Builder {
	return Default.NewBuilder()
}

// NewBuilderWithCapacity creates a Builder on the Default allocator.
func NewBuilderWithCapacity(capacity int) *Builder {
	return Default.NewBuilderWithCapacity(capacity)
}

func (b *Builder) allocator() *Allocator {
	if b.parentAllocator == nil {
		b.parentAllocator = Default
	}
	return b.parentAllocator
}

// prepare revives a Builder that holds no block: one that is zero-valued,
// consumed by ToString, or destroyed. The fresh block starts a new lifecycle
// with zero content, the documented post-freeze behavior.
func (b *Builder) prepare() {
	if b.block != nil {
		return
	}
	a := b.allocator()
	b.capacity = a.builderCapacity
	b.block = a.allocateBlock(0, b.capacity)
}

// ensureUnique is the copy-on-write gate. If any other handle aliases the
// builder's block, the payload is cloned into a new exclusively-owned block
// of exactly the current length and the old reference is released. It must
// run before any byte of the block is written.
func (b *Builder) ensureUnique() {
	if b.block.refs.Load() <= 1 {
		return
	}

	a := b.allocator()
	clone := a.allocateBlock(b.block.length, b.block.length)
	copy(clone.data, b.block.payload())

	b.block.release()
	b.block = clone
	b.capacity = clone.length

	a.stats.copyOnWriteCount.Add(1)
	DebugValidate(b)
}

// ensureCapacity grows the block's backing array until it can hold required
// payload bytes, doubling (or the allocator's configured factor) from the
// current capacity. The block identity and its reference count are
// preserved; only the backing array is replaced. The caller must already
// hold the only reference.
func (b *Builder) ensureCapacity(required int) {
	if b.capacity >= required {
		return
	}

	a := b.allocator()
	newCapacity := b.capacity
	if newCapacity == 0 {
		newCapacity = a.builderCapacity
	}
	for newCapacity < required {
		newCapacity *= a.growthFactor
	}

	grown := make([]byte, b.block.length+1, newCapacity+1)
	copy(grown, b.block.data)
	b.block.swapData(grown)
	b.capacity = newCapacity

	a.stats.growCount.Add(1)
	DebugValidate(b)
}

// appendBytes implements the mutating-operation contract for all appends:
// uniqueness gate, capacity gate, then the write.
func (b *Builder) appendBytes(src []byte) {
	b.prepare()
	if len(src) == 0 {
		return
	}

	b.ensureUnique()

	oldLength := b.block.length
	newLength := oldLength + len(src)
	b.ensureCapacity(newLength)

	data := b.block.data[:newLength+1]
	copy(data[oldLength:], src)
	data[newLength] = 0
	b.block.data = data
	b.block.length = newLength

	DebugValidate(b)
}

func (b *Builder) appendByte(c byte) {
	b.appendBytes([]byte{c})
}

// Append adds text to the end of the builder's content.
func (b *Builder) Append(text string) {
	b.prepare()
	if len(text) == 0 {
		return
	}

	b.ensureUnique()

	oldLength := b.block.length
	newLength := oldLength + len(text)
	b.ensureCapacity(newLength)

	data := b.block.data[:newLength+1]
	copy(data[oldLength:], text)
	data[newLength] = 0
	b.block.data = data
	b.block.length = newLength

	DebugValidate(b)
}

// AppendRune adds the UTF-8 encoding of cp to the end of the builder's
// content. Codepoints outside the valid Unicode range append the replacement
// character.
func (b *Builder) AppendRune(cp rune) {
	var buf [codec.MaxEncodedLen]byte
	b.appendBytes(codec.AppendRune(buf[:0], cp))
}

// AppendString adds a String's payload to the end of the builder's content.
// Appending a handle that aliases the builder's own block is safe: the
// uniqueness gate clones the builder side before the source is read.
func (b *Builder) AppendString(str String) {
	b.prepare()
	if str.Len() == 0 {
		return
	}

	b.ensureUnique()
	b.appendBytes(str.block.payload())
}

// Insert adds text at byte offset index, shifting later content up. The
// index is clamped to the current content bounds.
func (b *Builder) Insert(index int, text string) {
	b.prepare()
	if len(text) == 0 {
		return
	}

	if index < 0 {
		index = 0
	}
	if index > b.block.length {
		index = b.block.length
	}

	b.ensureUnique()

	oldLength := b.block.length
	newLength := oldLength + len(text)
	b.ensureCapacity(newLength)

	data := b.block.data[:newLength+1]
	// Move the tail, terminator included, then drop the text into the gap.
	copy(data[index+len(text):], data[index:oldLength+1])
	copy(data[index:], text)
	b.block.data = data
	b.block.length = newLength

	DebugValidate(b)
}

// Clear resets the builder's content to empty without releasing its
// capacity. If the block is shared, the builder walks away from it and
// starts over instead of cloning bytes it is about to discard; the effect on
// other handles is the same as any copy-on-write.
func (b *Builder) Clear() {
	b.prepare()

	if b.block.refs.Load() > 1 {
		a := b.allocator()
		b.block.release()
		b.capacity = a.builderCapacity
		b.block = a.allocateBlock(0, b.capacity)
		a.stats.copyOnWriteCount.Add(1)
		return
	}

	b.block.length = 0
	b.block.data = b.block.data[:1]
	b.block.data[0] = 0

	DebugValidate(b)
}

// ToString freezes the builder's content into an immutable String,
// transferring ownership of the builder's single reference to the returned
// handle. The handle's reference count is therefore exactly 1, and the
// builder is left holding no block: its next mutating operation starts a new
// lifecycle with fresh, empty storage. Unused capacity is reclaimed before
// the transfer.
//
// Transferring rather than sharing is what keeps the builder fast after a
// freeze. If the builder kept its reference, the very next append would see
// a reference count of 2 and clone for nothing.
func (b *Builder) ToString() String {
	b.prepare()

	blk := b.block
	if cap(blk.data) > blk.length+1 {
		a := b.allocator()
		a.stats.blockBytes.Add(int64(blk.length + 1 - cap(blk.data)))
		blk.data = blk.data[: blk.length+1 : blk.length+1]
		a.stats.shrinkCount.Add(1)
	}

	b.block = nil
	b.capacity = 0

	DebugValidate(blk)
	return String{block: blk}
}

// Snapshot returns a handle aliasing the builder's current block without
// consuming the builder. The snapshot and the builder then share the block:
// the builder's next mutating operation will find it shared, clone the
// payload through the uniqueness gate, and leave the snapshot's content
// untouched. Freezing with ToString is cheaper when the builder is done;
// Snapshot is for reading intermediate content while building continues.
func (b *Builder) Snapshot() String {
	b.prepare()
	b.block.retain()
	return String{block: b.block}
}

// Destroy releases the builder's block, if any, without freezing it. The
// builder may still be reused afterwards; like a consumed builder, it will
// start over with fresh storage.
func (b *Builder) Destroy() {
	if b.block == nil {
		return
	}
	b.block.release()
	b.block = nil
	b.capacity = 0
}

// Len returns the current content length in bytes. A consumed builder
// reports 0.
func (b *Builder) Len() int {
	if b.block == nil {
		return 0
	}
	return b.block.length
}

// Capacity returns the payload bytes available before the next growth. A
// consumed builder reports 0.
func (b *Builder) Capacity() int {
	if b.block == nil {
		return 0
	}
	return b.capacity
}

// Bytes returns a copy of the current content.
func (b *Builder) Bytes() []byte {
	if b.block == nil {
		return []byte{}
	}
	out := make([]byte, b.block.length)
	copy(out, b.block.payload())
	return out
}

func (b *Builder) Validate() error {
	if b.block == nil {
		return nil
	}
	if err := b.block.Validate(); err != nil {
		return err
	}
	if b.capacity < b.block.length {
		return errCapacityBelowLength(b.capacity, b.block.length)
	}
	return nil
}
