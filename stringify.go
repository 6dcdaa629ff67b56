package beautify

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// stringifier carries the per-call settings of one rendering. It holds no
// mutable state: the indentation gap travels as a parameter.
type stringifier struct {
	indent   string
	width    int
	fn       ReplacerFunc
	allow    []string
	hasAllow bool
}

func newStringifier(opts *Options) stringifier {
	if opts == nil {
		opts = DefaultOptions
	}
	s := stringifier{indent: opts.Indent, width: opts.Width}
	switch r := opts.Replacer.(type) {
	case ReplacerFunc:
		s.fn = r
	case AllowList:
		s.allow = r
		s.hasAllow = r != nil
	}
	return s
}

// render produces the text of v as the root of a document. The second result
// is false when the root is absent.
func (s *stringifier) render(v Value) (string, bool) {
	var holder Value
	if s.fn != nil {
		holder = rootHolder(v)
	}
	return s.stringify(holder, "", v, "")
}

// stringify renders value, which was read from holder under key. gap is the
// indentation of the line holding the value. A false result means absent:
// object members are then omitted and array slots become null.
func (s *stringifier) stringify(holder Value, key string, value Value, gap string) (string, bool) {
	if value.hook != nil && value.composite() {
		value = value.hook(key)
	}
	if s.fn != nil {
		value = s.fn(holder, key, value)
	}

	switch value.kind {
	case KindString:
		return Quote(value.str), true
	case KindNumber:
		return value.numberText(), true
	case KindBool:
		if value.b {
			return "true", true
		}
		return "false", true
	case KindNull:
		return "null", true
	case KindArray:
		return s.array(value, gap), true
	case KindObject:
		return s.object(value, gap), true
	default:
		return "", false
	}
}

func (s *stringifier) array(v Value, gap string) string {
	if len(v.elems) == 0 {
		return "[]"
	}
	inner := gap + s.indent
	parts := acquireParts()
	defer releaseParts(parts)
	for i, elem := range v.elems {
		text, ok := s.stringify(v, strconv.Itoa(i), elem, inner)
		if !ok {
			text = "null"
		}
		*parts = append(*parts, text)
	}
	return s.layout('[', ']', *parts, gap, inner)
}

func (s *stringifier) object(v Value, gap string) string {
	inner := gap + s.indent
	parts := acquireParts()
	defer releaseParts(parts)
	if s.hasAllow {
		for _, key := range s.allow {
			if text, ok := s.stringify(v, key, v.Get(key), inner); ok {
				*parts = append(*parts, s.member(key, text))
			}
		}
	} else {
		for _, m := range v.members {
			if text, ok := s.stringify(v, m.Key, m.Value, inner); ok {
				*parts = append(*parts, s.member(m.Key, text))
			}
		}
	}
	if len(*parts) == 0 {
		return "{}"
	}
	return s.layout('{', '}', *parts, gap, inner)
}

func (s *stringifier) member(key, text string) string {
	if s.indent == "" {
		return Quote(key) + ":" + text
	}
	return Quote(key) + ": " + text
}

// layout picks between the single-line and the one-member-per-line form.
// The fit test counts the inner gap, the members joined by ", ", and four
// columns for the brackets and their padding spaces, all in UTF-16 code
// units.
func (s *stringifier) layout(open, close byte, parts []string, gap, inner string) string {
	var b strings.Builder
	if s.indent == "" {
		b.Grow(joinedLen(parts, 1) + 2)
		b.WriteByte(open)
		writeJoined(&b, parts, ",")
		b.WriteByte(close)
		return b.String()
	}
	single := joinedLen(parts, 2)
	if utf16Len(inner)+joinedUnits(parts, 2)+4 > s.width {
		b.Grow(joinedLen(parts, 2+len(inner)) + len(inner) + len(gap) + 4)
		b.WriteByte(open)
		b.WriteByte('\n')
		b.WriteString(inner)
		writeJoined(&b, parts, ",\n"+inner)
		b.WriteByte('\n')
		b.WriteString(gap)
		b.WriteByte(close)
		return b.String()
	}
	b.Grow(single + 4)
	b.WriteByte(open)
	b.WriteByte(' ')
	writeJoined(&b, parts, ", ")
	b.WriteByte(' ')
	b.WriteByte(close)
	return b.String()
}

// joinedLen is the length of parts joined by a separator of sepLen bytes.
func joinedLen(parts []string, sepLen int) int {
	n := sepLen * (len(parts) - 1)
	for _, p := range parts {
		n += len(p)
	}
	return n
}

// joinedUnits is joinedLen measured in UTF-16 code units.
func joinedUnits(parts []string, sepLen int) int {
	n := sepLen * (len(parts) - 1)
	for _, p := range parts {
		n += utf16Len(p)
	}
	return n
}

// utf16Len counts s in UTF-16 code units: one per rune, two for runes
// outside the Basic Multilingual Plane.
func utf16Len(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			n := i
			for _, r := range s[i:] {
				n++
				if r > 0xFFFF {
					n++
				}
			}
			return n
		}
	}
	return len(s)
}

func writeJoined(b *strings.Builder, parts []string, sep string) {
	for i, p := range parts {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(p)
	}
}
