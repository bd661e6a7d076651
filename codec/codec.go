// Package codec implements the UTF-8 encode and decode primitives consumed by
// dstring's codepoint-level operations.
//
// It exists as a separate package, rather than leaning on unicode/utf8,
// because dstring's iterators require decode semantics the standard library
// does not provide: a multi-byte sequence truncated by the end of the buffer
// must report zero bytes consumed so that iteration stops cleanly instead of
// producing replacement characters for a partial tail.
package codec

// ReplacementChar is substituted when encoding a codepoint outside the valid
// Unicode range.
const ReplacementChar rune = 0xFFFD

// MaxEncodedLen is the largest number of bytes AppendRune can add to dst.
const MaxEncodedLen = 4

// AppendRune appends the UTF-8 encoding of cp to dst and returns the extended
// slice. Codepoints above U+10FFFF and negative values encode as
// ReplacementChar.
func AppendRune(dst []byte, cp rune) []byte {
	switch {
	case cp < 0:
		break
	case cp <= 0x7F:
		return append(dst, byte(cp))
	case cp <= 0x7FF:
		return append(dst,
			byte(0xC0|cp>>6),
			byte(0x80|cp&0x3F))
	case cp <= 0xFFFF:
		return append(dst,
			byte(0xE0|cp>>12),
			byte(0x80|cp>>6&0x3F),
			byte(0x80|cp&0x3F))
	case cp <= 0x10FFFF:
		return append(dst,
			byte(0xF0|cp>>18),
			byte(0x80|cp>>12&0x3F),
			byte(0x80|cp>>6&0x3F),
			byte(0x80|cp&0x3F))
	}

	return append(dst, 0xEF, 0xBF, 0xBD)
}

// RuneLen returns the number of bytes AppendRune would add for cp.
func RuneLen(cp rune) int {
	switch {
	case cp < 0:
		return 3
	case cp <= 0x7F:
		return 1
	case cp <= 0x7FF:
		return 2
	case cp <= 0xFFFF:
		return 3
	case cp <= 0x10FFFF:
		return 4
	}
	return 3
}

// DecodeRune decodes the codepoint starting at data[pos]. It returns the
// codepoint and the number of bytes it occupies.
//
// Two sentinel results exist:
//   - size 0: pos is at or past the end of data, or a multi-byte sequence is
//     truncated by the end of the buffer. Iterators must treat this as
//     end-of-input.
//   - (ReplacementChar, 1): data[pos] is not a valid UTF-8 lead byte.
func DecodeRune(data []byte, pos int) (cp rune, size int) {
	if pos >= len(data) {
		return 0, 0
	}

	first := data[pos]

	if first <= 0x7F {
		return rune(first), 1
	}

	if first&0xE0 == 0xC0 {
		if pos+1 >= len(data) {
			return 0, 0
		}
		return rune(first&0x1F)<<6 | rune(data[pos+1]&0x3F), 2
	}

	if first&0xF0 == 0xE0 {
		if pos+2 >= len(data) {
			return 0, 0
		}
		return rune(first&0x0F)<<12 |
			rune(data[pos+1]&0x3F)<<6 |
			rune(data[pos+2]&0x3F), 3
	}

	if first&0xF8 == 0xF0 {
		if pos+3 >= len(data) {
			return 0, 0
		}
		return rune(first&0x07)<<18 |
			rune(data[pos+1]&0x3F)<<12 |
			rune(data[pos+2]&0x3F)<<6 |
			rune(data[pos+3]&0x3F), 4
	}

	return ReplacementChar, 1
}
