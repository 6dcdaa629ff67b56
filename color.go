package beautify

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"pkt.systems/beautify/internal/ansi"
)

// ColorPalette holds the ANSI escape sequence written before each JSON token
// class. Empty fields leave the class unstyled.
type ColorPalette struct {
	Key         string
	String      string
	Number      string
	True        string
	False       string
	Null        string
	Brackets    string
	Punctuation string
}

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldColor(w io.Writer, opts *Options) bool {
	if opts != nil && strings.EqualFold(strings.TrimSpace(opts.Palette), paletteNoneName) {
		return false
	}
	if opts != nil && opts.ForceColor {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(w)
}

// Colorize wraps the tokens of rendered JSON text in the palette's escape
// sequences. Whitespace and layout are left untouched, so stripping the
// escapes gives back src. src is returned as is for the no-color palette.
func Colorize(src []byte, pal ColorPalette) []byte {
	if pal == (ColorPalette{}) {
		return src
	}
	out := make([]byte, 0, len(src)+len(src)/2)

	type frame struct {
		kind      byte
		expectKey bool
	}
	stack := make([]frame, 0, 8)

	for i := 0; i < len(src); {
		ch := src[i]
		switch ch {
		case '{':
			stack = append(stack, frame{kind: '{', expectKey: true})
			out = appendStyled(out, pal.Brackets, src[i:i+1])
			i++
		case '[':
			stack = append(stack, frame{kind: '['})
			out = appendStyled(out, pal.Brackets, src[i:i+1])
			i++
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			out = appendStyled(out, pal.Brackets, src[i:i+1])
			i++
		case ':':
			out = appendStyled(out, pal.Punctuation, src[i:i+1])
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' {
				stack[len(stack)-1].expectKey = false
			}
			i++
		case ',':
			out = appendStyled(out, pal.Punctuation, src[i:i+1])
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' {
				stack[len(stack)-1].expectKey = true
			}
			i++
		case '"':
			start := i
			i++
			for i < len(src) {
				if src[i] == '\\' && i+1 < len(src) {
					i += 2
					continue
				}
				if src[i] == '"' {
					i++
					break
				}
				i++
			}
			style := pal.String
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' && stack[len(stack)-1].expectKey {
				style = pal.Key
			}
			out = appendStyled(out, style, src[start:i])
		default:
			if (ch >= '0' && ch <= '9') || ch == '-' {
				start := i
				i++
				for i < len(src) && isNumberByte(src[i]) {
					i++
				}
				out = appendStyled(out, pal.Number, src[start:i])
				continue
			}
			if lit, style := literalAt(src[i:], pal); lit != "" {
				out = appendStyled(out, style, src[i:i+len(lit)])
				i += len(lit)
				continue
			}
			out = append(out, ch)
			i++
		}
	}
	return out
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}

func literalAt(src []byte, pal ColorPalette) (string, string) {
	switch {
	case bytes.HasPrefix(src, []byte("true")):
		return "true", pal.True
	case bytes.HasPrefix(src, []byte("false")):
		return "false", pal.False
	case bytes.HasPrefix(src, []byte("null")):
		return "null", pal.Null
	}
	return "", ""
}

func appendStyled(dst []byte, style string, tok []byte) []byte {
	if style == "" {
		return append(dst, tok...)
	}
	dst = append(dst, style...)
	dst = append(dst, tok...)
	return append(dst, ansi.Reset...)
}
