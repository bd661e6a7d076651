package dstring

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"

	"github.com/vkngwrapper/arsenal/dstring/internal/utils"
)

// block is the single owned allocation behind a String or Builder: a
// reference count, a payload length, and the payload bytes followed by one
// terminator byte. len(data) is always length+1 and data[length] is always 0
// while the block is live. cap(data) may exceed len(data) when a Builder has
// reserved growth room.
//
// Nothing is freed while any handle still holds a reference. The block is
// freed exactly once, when refs transitions from 1 to 0.
type block struct {
	refs   utils.RefCount
	length int
	data   []byte

	parentAllocator *Allocator
}

// allocateBlock creates a block sized for length payload bytes with room for
// capacity payload bytes before the next growth, owned by a single reference.
// Allocation failure is fatal (the runtime aborts); there is no recoverable
// out-of-memory path.
func (a *Allocator) allocateBlock(length, capacity int) *block {
	if capacity < length {
		capacity = length
	}

	b := &block{
		length:          length,
		data:            make([]byte, length+1, capacity+1),
		parentAllocator: a,
	}
	b.refs.UseAtomic = a.atomicRefs
	b.refs.Init(1)

	a.stats.blockCount.Add(1)
	a.stats.blockBytes.Add(int64(cap(b.data)))
	a.stats.handleCount.Add(1)
	a.stats.allocationCount.Add(1)
	a.stats.allocationBytes.Add(int64(length))

	DebugValidate(b)
	return b
}

func (b *block) retain() {
	b.refs.Increment()
	b.parentAllocator.stats.handleCount.Add(1)
}

func (b *block) release() {
	b.parentAllocator.stats.handleCount.Add(-1)
	if b.refs.Decrement() == 0 {
		b.free()
	}
}

// free tears the block down once its last reference is gone. The backing
// array itself is reclaimed by the collector; what matters here is that the
// block can never again be mistaken for live string data.
func (b *block) free() {
	a := b.parentAllocator
	a.stats.blockCount.Add(-1)
	a.stats.blockBytes.Add(int64(-cap(b.data)))

	debugPoison(b.data)
	b.data = nil
	b.length = 0
}

// payload returns the block's content without the terminator.
func (b *block) payload() []byte {
	return b.data[:b.length]
}

// view returns the payload as a string without copying. The returned string
// aliases the block and is only valid while a reference is held.
func (b *block) view() string {
	if b.length == 0 {
		return ""
	}
	return unsafe.String(&b.data[0], b.length)
}

// swapData replaces the block's backing array, keeping the block identity
// (and therefore its reference count) intact. The caller must hold the only
// reference.
func (b *block) swapData(data []byte) {
	a := b.parentAllocator
	a.stats.blockBytes.Add(int64(cap(data) - cap(b.data)))
	b.data = data
}

func (b *block) Validate() error {
	refs := b.refs.Load()
	if refs <= 0 {
		return cerrors.Wrapf(ErrReleasedBlock, "reference count is %d", refs)
	}
	if b.data == nil || len(b.data) != b.length+1 {
		return cerrors.Newf("block data is %d bytes long, but the declared payload length is %d", len(b.data), b.length)
	}
	if b.data[b.length] != 0 {
		return cerrors.Wrapf(ErrMissingTerminator, "byte at offset %d is 0x%02x", b.length, b.data[b.length])
	}
	return nil
}
