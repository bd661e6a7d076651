package dstring

// String is an immutable, reference-counted string handle. Any number of
// String values may alias the same block; they are interchangeable, and no
// operation ever mutates a block's payload in place. A new String is obtained
// from a constructor, from Retain, or from a transformation; every String
// obtained that way owns one reference and should eventually be passed to
// Release.
//
// The zero String is valid and behaves as the empty string for every
// operation. This is the library's uniform misuse policy: an absent handle is
// never an error, it is just empty.
type String struct {
	block *block
}

// NewString creates a String holding a copy of text. Zero-length input yields
// a valid empty block, not an absent handle.
func (a *Allocator) NewString(text string) String {
	b := a.allocateBlock(len(text), len(text))
	copy(b.data, text)
	return String{block: b}
}

// NewStringFromBytes creates a String holding a copy of buf. The payload may
// contain zero bytes; length is tracked explicitly and the terminator is
// maintained past the end of the payload.
func (a *Allocator) NewStringFromBytes(buf []byte) String {
	b := a.allocateBlock(len(buf), len(buf))
	copy(b.data, buf)
	return String{block: b}
}

// New creates a String from the Default allocator.
func New(text string) String {
	return Default.NewString(text)
}

// NewFromBytes creates a String from the Default allocator. The payload may
// contain zero bytes.
func NewFromBytes(buf []byte) String {
	return Default.NewStringFromBytes(buf)
}

// allocator returns the allocator that should service new blocks derived
// from this handle. The zero String allocates from Default.
func (s String) allocator() *Allocator {
	if s.block != nil {
		return s.block.parentAllocator
	}
	return Default
}

// Retain returns a new handle aliasing the same block, incrementing its
// reference count. O(1), no copy. Retain of the zero String is the zero
// String.
func (s String) Retain() String {
	if s.block == nil {
		return String{}
	}
	DebugValidate(s.block)
	s.block.retain()
	return String{block: s.block}
}

// Release drops this handle's reference, freeing the block if it was the last
// one, and resets the receiver to the zero String so the handle cannot be
// used to reach freed data. Release of the zero String is a no-op.
func (s *String) Release() {
	if s.block == nil {
		return
	}
	DebugValidate(s.block)
	s.block.release()
	s.block = nil
}

// Len returns the payload length in bytes. O(1).
func (s String) Len() int {
	if s.block == nil {
		return 0
	}
	return s.block.length
}

// RefCount returns the number of handles currently aliasing this block, or 0
// for the zero String.
func (s String) RefCount() int {
	if s.block == nil {
		return 0
	}
	return int(s.block.refs.Load())
}

// IsShared reports whether more than one handle aliases this block.
func (s String) IsShared() bool {
	return s.RefCount() > 1
}

// IsEmpty reports whether the payload is empty. The zero String is empty.
func (s String) IsEmpty() bool {
	return s.Len() == 0
}

// String returns the payload as a Go string without copying. The result
// aliases the block, so it must not be used after the last handle to the
// block has been released.
func (s String) String() string {
	if s.block == nil {
		return ""
	}
	return s.block.view()
}

// Bytes returns a copy of the payload.
func (s String) Bytes() []byte {
	if s.block == nil {
		return []byte{}
	}
	out := make([]byte, s.block.length)
	copy(out, s.block.payload())
	return out
}

// Is reports whether two handles alias the same block. Transformations whose
// output would be byte-identical to an input are allowed to return a retained
// input instead of allocating; Is makes that sharing observable, which is the
// only way it is observable.
func (s String) Is(other String) bool {
	return s.block != nil && s.block == other.block
}

// ReleaseAll releases every handle in strs and zeroes the slice entries. It
// is a convenience for the slices returned by Split.
func ReleaseAll(strs []String) {
	for i := range strs {
		strs[i].Release()
	}
}
