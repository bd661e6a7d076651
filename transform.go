package dstring

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/vkngwrapper/arsenal/dstring/codec"
)

// Transformations never mutate an existing block: they produce a brand-new
// block, or return a retained input handle when the output would be
// byte-identical to it. The retained-input fast path is observable only
// through Is and RefCount.

// Append returns a new String holding the payload followed by text.
func (s String) Append(text string) String {
	if len(text) == 0 {
		return s.Retain()
	}
	if s.Len() == 0 {
		return s.allocator().NewString(text)
	}

	b := s.allocator().allocateBlock(s.Len()+len(text), s.Len()+len(text))
	n := copy(b.data, s.block.payload())
	copy(b.data[n:], text)
	return String{block: b}
}

// AppendRune returns a new String holding the payload followed by the UTF-8
// encoding of cp. Codepoints outside the valid Unicode range append the
// replacement character.
func (s String) AppendRune(cp rune) String {
	var buf [codec.MaxEncodedLen]byte
	encoded := codec.AppendRune(buf[:0], cp)

	b := s.allocator().allocateBlock(s.Len()+len(encoded), s.Len()+len(encoded))
	n := copy(b.data, s.payloadView())
	copy(b.data[n:], encoded)
	return String{block: b}
}

// Concat returns a new String holding the payload followed by other's
// payload. If either side is empty, the other handle is retained instead of
// allocating.
func (s String) Concat(other String) String {
	if other.Len() == 0 {
		return s.Retain()
	}
	if s.Len() == 0 {
		return other.Retain()
	}

	b := s.allocator().allocateBlock(s.Len()+other.Len(), s.Len()+other.Len())
	n := copy(b.data, s.block.payload())
	copy(b.data[n:], other.block.payload())
	return String{block: b}
}

// Prepend returns a new String holding text followed by the payload.
func (s String) Prepend(text string) String {
	if len(text) == 0 {
		return s.Retain()
	}
	if s.Len() == 0 {
		return s.allocator().NewString(text)
	}

	b := s.allocator().allocateBlock(s.Len()+len(text), s.Len()+len(text))
	n := copy(b.data, text)
	copy(b.data[n:], s.block.payload())
	return String{block: b}
}

// Insert returns a new String with text inserted at byte offset index. The
// index is clamped to the payload bounds: negative values insert at the
// start, values past the end append.
func (s String) Insert(index int, text string) String {
	if len(text) == 0 {
		return s.Retain()
	}

	length := s.Len()
	if index < 0 {
		index = 0
	}
	if index > length {
		index = length
	}

	b := s.allocator().allocateBlock(length+len(text), length+len(text))
	payload := s.payloadView()
	n := copy(b.data, payload[:index])
	n += copy(b.data[n:], text)
	copy(b.data[n:], payload[index:])
	return String{block: b}
}

// Substring returns a new String holding length bytes of payload starting at
// byte offset start. Out-of-range bounds are clamped; a start at or past the
// end yields an empty String. Requesting the whole payload retains the input
// instead of allocating.
func (s String) Substring(start, length int) String {
	if start < 0 {
		start = 0
	}
	if length < 0 {
		length = 0
	}

	total := s.Len()
	if start == 0 && length >= total && s.block != nil {
		return s.Retain()
	}
	if start >= total {
		return s.allocator().NewString("")
	}
	if start+length > total {
		length = total - start
	}

	return s.allocator().NewStringFromBytes(s.block.payload()[start : start+length])
}

// Repeat returns a new String holding the payload repeated times times.
// Non-positive counts yield an empty String; a count of 1 retains the input.
func (s String) Repeat(times int) String {
	if times <= 0 {
		return s.allocator().NewString("")
	}
	if times == 1 || s.Len() == 0 {
		return s.Retain()
	}

	sb := s.allocator().NewBuilderWithCapacity(s.Len() * times)
	for i := 0; i < times; i++ {
		sb.AppendString(s)
	}
	return sb.ToString()
}

// Reverse returns a new String with the payload's codepoints in reverse
// order. A malformed tail is dropped, matching the codepoint iterator's
// end-of-input handling.
func (s String) Reverse() String {
	if s.Len() <= 1 {
		return s.Retain()
	}

	codepoints := make([]rune, 0, s.Len())
	iter := s.Codepoints()
	for {
		cp, ok := iter.Next()
		if !ok {
			break
		}
		codepoints = append(codepoints, cp)
	}
	slices.Reverse(codepoints)

	sb := s.allocator().NewBuilderWithCapacity(s.Len())
	for _, cp := range codepoints {
		sb.AppendRune(cp)
	}
	return sb.ToString()
}

// PadLeft returns a new String padded on the left with pad bytes up to width
// bytes. Payloads already at least width bytes long are retained as-is.
func (s String) PadLeft(width int, pad byte) String {
	return s.padded(width, pad, true)
}

// PadRight returns a new String padded on the right with pad bytes up to
// width bytes. Payloads already at least width bytes long are retained as-is.
func (s String) PadRight(width int, pad byte) String {
	return s.padded(width, pad, false)
}

func (s String) padded(width int, pad byte, left bool) String {
	length := s.Len()
	if length >= width {
		return s.Retain()
	}

	sb := s.allocator().NewBuilderWithCapacity(width)
	if !left {
		sb.AppendString(s)
	}
	for i := 0; i < width-length; i++ {
		sb.appendByte(pad)
	}
	if left {
		sb.AppendString(s)
	}
	return sb.ToString()
}

// isSpace matches the terminator-safe ASCII whitespace set used by the trim
// operations.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// TrimSpace returns a new String with leading and trailing ASCII whitespace
// removed. A payload with nothing to trim is retained instead of allocating.
func (s String) TrimSpace() String {
	payload := s.payloadView()
	start := 0
	end := len(payload)
	for start < end && isSpace(payload[start]) {
		start++
	}
	for end > start && isSpace(payload[end-1]) {
		end--
	}
	return s.trimmed(start, end)
}

// TrimSpaceLeft returns a new String with leading ASCII whitespace removed.
func (s String) TrimSpaceLeft() String {
	payload := s.payloadView()
	start := 0
	for start < len(payload) && isSpace(payload[start]) {
		start++
	}
	return s.trimmed(start, len(payload))
}

// TrimSpaceRight returns a new String with trailing ASCII whitespace removed.
func (s String) TrimSpaceRight() String {
	payload := s.payloadView()
	end := len(payload)
	for end > 0 && isSpace(payload[end-1]) {
		end--
	}
	return s.trimmed(0, end)
}

func (s String) trimmed(start, end int) String {
	if s.block == nil {
		return String{}
	}
	if start == 0 && end == s.block.length {
		return s.Retain()
	}
	return s.allocator().NewStringFromBytes(s.block.payload()[start:end])
}

// ToUpper returns a new String with the payload upper-cased per Unicode case
// mapping. A payload left unchanged by the mapping is retained instead of
// allocating.
func (s String) ToUpper() String {
	return s.recased(strings.ToUpper)
}

// ToLower returns a new String with the payload lower-cased per Unicode case
// mapping. A payload left unchanged by the mapping is retained instead of
// allocating.
func (s String) ToLower() String {
	return s.recased(strings.ToLower)
}

func (s String) recased(mapping func(string) string) String {
	view := s.String()
	mapped := mapping(view)
	if mapped == view {
		return s.Retain()
	}
	return s.allocator().NewString(mapped)
}

// Replace returns a new String with the first occurrence of old replaced by
// replacement. If old is empty or absent, the input is retained unchanged.
func (s String) Replace(old, replacement string) String {
	if len(old) == 0 {
		return s.Retain()
	}

	pos := s.Index(old)
	if pos < 0 {
		return s.Retain()
	}

	payload := s.payloadView()
	sb := s.allocator().NewBuilderWithCapacity(len(payload) - len(old) + len(replacement))
	sb.appendBytes(payload[:pos])
	sb.Append(replacement)
	sb.appendBytes(payload[pos+len(old):])
	return sb.ToString()
}

// ReplaceAll returns a new String with every occurrence of old replaced by
// replacement. If old is empty or absent, the input is retained unchanged.
func (s String) ReplaceAll(old, replacement string) String {
	if len(old) == 0 || !s.Contains(old) {
		return s.Retain()
	}

	view := s.String()
	sb := s.allocator().NewBuilderWithCapacity(len(view))
	for {
		pos := strings.Index(view, old)
		if pos < 0 {
			sb.Append(view)
			break
		}
		sb.Append(view[:pos])
		sb.Append(replacement)
		view = view[pos+len(old):]
	}
	return sb.ToString()
}

// Split slices the payload into all substrings separated by delimiter and
// returns a slice of new handles. An empty delimiter splits into individual
// bytes. The caller owns one reference per element; ReleaseAll is the
// matching cleanup.
func (s String) Split(delimiter string) []String {
	payload := s.payloadView()

	if len(delimiter) == 0 {
		parts := make([]String, 0, len(payload))
		for i := range payload {
			parts = append(parts, s.allocator().NewStringFromBytes(payload[i:i+1]))
		}
		return parts
	}

	view := s.String()
	var parts []String
	for {
		pos := strings.Index(view, delimiter)
		if pos < 0 {
			parts = append(parts, s.allocator().NewString(view))
			return parts
		}
		parts = append(parts, s.allocator().NewString(view[:pos]))
		view = view[pos+len(delimiter):]
	}
}

// Join concatenates the payloads of strs with separator between them,
// producing a single new String. A single-element list retains that element
// instead of allocating.
func (a *Allocator) Join(strs []String, separator string) String {
	if len(strs) == 0 {
		return a.NewString("")
	}
	if len(strs) == 1 {
		if strs[0].block != nil {
			return strs[0].Retain()
		}
		return a.NewString("")
	}

	total := len(separator) * (len(strs) - 1)
	for _, s := range strs {
		total += s.Len()
	}

	sb := a.NewBuilderWithCapacity(total)
	for i, s := range strs {
		if i > 0 {
			sb.Append(separator)
		}
		sb.AppendString(s)
	}
	return sb.ToString()
}

// Join concatenates strs with separator using the Default allocator.
func Join(strs []String, separator string) String {
	return Default.Join(strs, separator)
}
