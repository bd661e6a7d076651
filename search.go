package dstring

import (
	"bytes"
	"strings"
)

// Compare lexicographically compares the payloads of two handles, returning
// -1, 0 or +1 in the manner of bytes.Compare. Handles aliasing the same block
// compare equal without touching the payloads.
func (s String) Compare(other String) int {
	if s.block == other.block {
		return 0
	}
	return bytes.Compare(s.payloadView(), other.payloadView())
}

// Equal reports whether two handles have byte-identical payloads.
func (s String) Equal(other String) bool {
	return s.Compare(other) == 0
}

// Index returns the byte offset of the first occurrence of needle, or -1 if
// needle is not present.
func (s String) Index(needle string) int {
	return strings.Index(s.String(), needle)
}

// Contains reports whether needle occurs within the payload.
func (s String) Contains(needle string) bool {
	return s.Index(needle) >= 0
}

// HasPrefix reports whether the payload begins with prefix.
func (s String) HasPrefix(prefix string) bool {
	return strings.HasPrefix(s.String(), prefix)
}

// HasSuffix reports whether the payload ends with suffix.
func (s String) HasSuffix(suffix string) bool {
	return strings.HasSuffix(s.String(), suffix)
}

// payloadView returns the payload bytes without copying, or nil for the zero
// String.
func (s String) payloadView() []byte {
	if s.block == nil {
		return nil
	}
	return s.block.payload()
}
