package beautify

import (
	"unicode/utf8"
)

// Quote returns s as a JSON string literal, surrounding quotes included.
//
// Besides the characters JSON requires to be escaped, Quote escapes DEL and
// the C1 controls, the soft hyphen, and the invisible format and bidi
// controls (U+0600-U+0604, U+070F, U+17B4-U+17B5, U+200C-U+200F,
// U+2028-U+202F, U+2060-U+206F, U+FEFF, U+FFF0-U+FFFF) so the literal is safe
// to paste into JavaScript sources and terminals. Invalid UTF-8 bytes become
// U+FFFD.
func Quote(s string) string {
	i := firstEscape(s)
	if i < 0 {
		return `"` + s + `"`
	}
	buf := make([]byte, 0, len(s)+8)
	buf = append(buf, '"')
	buf = append(buf, s[:i]...)
	buf = appendEscaped(buf, s[i:])
	buf = append(buf, '"')
	return string(buf)
}

// AppendQuote appends the JSON string literal of s to dst.
func AppendQuote(dst []byte, s string) []byte {
	dst = append(dst, '"')
	if i := firstEscape(s); i < 0 {
		dst = append(dst, s...)
	} else {
		dst = append(dst, s[:i]...)
		dst = appendEscaped(dst, s[i:])
	}
	return append(dst, '"')
}

// firstEscape returns the byte offset of the first character needing an
// escape, or -1.
func firstEscape(s string) int {
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c < 0x20 || c == '"' || c == '\\' || c == 0x7f {
				return i
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 || escapable(r) {
			return i
		}
		i += size
	}
	return -1
}

func escapable(r rune) bool {
	switch {
	case r < 0x20, r == '"', r == '\\':
		return true
	case r < 0x7f:
		return false
	case r <= 0x9f, r == 0xad:
		return true
	case r >= 0x0600 && r <= 0x0604, r == 0x070f, r == 0x17b4, r == 0x17b5:
		return true
	case r >= 0x200c && r <= 0x200f, r >= 0x2028 && r <= 0x202f, r >= 0x2060 && r <= 0x206f:
		return true
	case r == 0xfeff, r >= 0xfff0 && r <= 0xffff:
		return true
	}
	return false
}

func appendEscaped(buf []byte, s string) []byte {
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			i++
			switch c {
			case '\\', '"':
				buf = append(buf, '\\', c)
			case '\b':
				buf = append(buf, '\\', 'b')
			case '\f':
				buf = append(buf, '\\', 'f')
			case '\n':
				buf = append(buf, '\\', 'n')
			case '\r':
				buf = append(buf, '\\', 'r')
			case '\t':
				buf = append(buf, '\\', 't')
			default:
				if c < 0x20 || c == 0x7f {
					buf = appendUnicodeEscape(buf, rune(c))
					continue
				}
				buf = append(buf, c)
			}
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf = appendUnicodeEscape(buf, utf8.RuneError)
		case escapable(r):
			buf = appendUnicodeEscape(buf, r)
		default:
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	return buf
}

func appendUnicodeEscape(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit(byte(r>>12)&0x0f),
		hexDigit(byte(r>>8)&0x0f),
		hexDigit(byte(r>>4)&0x0f),
		hexDigit(byte(r)&0x0f))
}

func hexDigit(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'a' + (v - 10)
}
