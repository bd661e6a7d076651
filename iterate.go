package dstring

import "github.com/vkngwrapper/arsenal/dstring/codec"

// CodepointIterator walks a String's payload one codepoint at a time. It
// holds a view of the payload rather than a reference, so the String it was
// created from must stay live for as long as the iterator is used.
type CodepointIterator struct {
	data []byte
	pos  int
}

// Codepoints returns an iterator positioned at the start of the payload.
func (s String) Codepoints() CodepointIterator {
	return CodepointIterator{data: s.payloadView()}
}

// Next decodes the codepoint at the current position and advances past it.
// It returns false at the end of the payload, and also when the payload ends
// in a truncated multi-byte sequence, which is treated as end-of-input.
func (it *CodepointIterator) Next() (rune, bool) {
	cp, size := codec.DecodeRune(it.data, it.pos)
	if size == 0 {
		return 0, false
	}
	it.pos += size
	return cp, true
}

// HasNext reports whether any bytes remain past the current position. Note
// that a remaining malformed tail still ends iteration: HasNext may return
// true while the following Next returns false.
func (it *CodepointIterator) HasNext() bool {
	return it.pos < len(it.data)
}

// CodepointLen returns the number of codepoints in the payload. O(n).
func (s String) CodepointLen() int {
	iter := s.Codepoints()
	count := 0
	for {
		if _, ok := iter.Next(); !ok {
			return count
		}
		count++
	}
}

// CodepointAt returns the codepoint at the given codepoint index (not byte
// offset). The second result is false if the index is out of range.
func (s String) CodepointAt(index int) (rune, bool) {
	if index < 0 {
		return 0, false
	}

	iter := s.Codepoints()
	for i := 0; ; i++ {
		cp, ok := iter.Next()
		if !ok {
			return 0, false
		}
		if i == index {
			return cp, true
		}
	}
}
