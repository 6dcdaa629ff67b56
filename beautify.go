package beautify

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
)

// Options controls rendering.
type Options struct {
	// Indent is one level of indentation. When empty the output is fully
	// compact and Width is ignored.
	Indent string
	// Width is the line width a container must fit in to stay on one line.
	// 0 expands every non-empty container.
	Width int
	// Replacer is nil, a ReplacerFunc or an AllowList.
	Replacer Replacer
	// Palette names the color palette used by RenderTo. "none" disables
	// color. Default "default".
	Palette string
	// ForceColor colors RenderTo output even when the writer is not a
	// terminal.
	ForceColor bool
}

// DefaultOptions holds the fallback configuration: two-space indentation
// wrapped at 80 columns.
var DefaultOptions = &Options{Indent: "  ", Width: 80, Palette: paletteDefaultName}

var compactOptions = &Options{Palette: paletteNoneName}

// Render returns the JSON text of v, or "" when v is absent (or a replacer
// made the root absent). Render never fails; opts == nil uses DefaultOptions.
//
// Rendering recurses once per nesting level. Values built to contain
// themselves through hooks recurse until the stack is exhausted.
func Render(v Value, opts *Options) string {
	s := newStringifier(opts)
	text, _ := s.render(v)
	return text
}

// RenderTo writes the JSON text of v followed by a newline. Output is colored
// with opts.Palette when w is a terminal or opts.ForceColor is set. Nothing
// is written for an absent root.
func RenderTo(w io.Writer, v Value, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions
	}
	pal, err := resolvePalette(opts, shouldColor(w, opts))
	if err != nil {
		return err
	}
	s := newStringifier(opts)
	text, ok := s.render(v)
	if !ok {
		return nil
	}
	out := make([]byte, 0, len(text)+1)
	out = append(out, text...)
	out = Colorize(out, pal)
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// Beautify renders value the way JSON.stringify does, with a width limit
// deciding per container between single-line and expanded layout.
//
// value is a Value or any Go value accepted by ValueOf. replacer is nil, a
// Replacer, a func(holder Value, key string, v Value) Value, a
// func(key string, v Value) Value, a []string or a []any allow-list
// (non-string entries are ignored). Nil functions and nil slices mean no
// replacer; an empty non-nil list renders every object as {}. space is a count of spaces or a literal
// indentation string; anything else means no indentation. width is any Go
// number, or nil for 0.
//
// A non-numeric width or an unsupported replacer returns ErrInvalidArgument
// before anything is rendered. An absent root yields "".
func Beautify(value any, replacer any, space any, width any) (string, error) {
	limit, err := widthArg(width)
	if err != nil {
		return "", err
	}
	rep, err := replacerArg(replacer)
	if err != nil {
		return "", err
	}
	v, ok := value.(Value)
	if !ok {
		if v, err = ValueOf(value); err != nil {
			return "", err
		}
	}
	opts := &Options{Indent: indentArg(space), Width: limit, Replacer: rep}
	return Render(v, opts), nil
}

func widthArg(width any) (int, error) {
	if width == nil {
		return 0, nil
	}
	rv := reflect.ValueOf(width)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return math.MaxInt, nil
		}
		return int(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		switch {
		case math.IsNaN(f), f >= math.MaxInt:
			// Comparisons against NaN never hold, so nothing expands.
			return math.MaxInt, nil
		case f <= math.MinInt:
			return math.MinInt, nil
		}
		return int(math.Floor(f)), nil
	default:
		return 0, fmt.Errorf("%w: width must be a number, got %T", ErrInvalidArgument, width)
	}
}

func clampInt(i int64) int {
	if i > math.MaxInt {
		return math.MaxInt
	}
	if i < math.MinInt {
		return math.MinInt
	}
	return int(i)
}

func indentArg(space any) string {
	if space == nil {
		return ""
	}
	rv := reflect.ValueOf(space)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return spaces(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() > math.MaxInt32 {
			return ""
		}
		return spaces(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		return spaces(int64(math.Floor(f)))
	default:
		return ""
	}
}

func spaces(n int64) string {
	if n <= 0 || n > math.MaxInt32 {
		return ""
	}
	return strings.Repeat(" ", int(n))
}

func replacerArg(replacer any) (Replacer, error) {
	switch r := replacer.(type) {
	case nil:
		return nil, nil
	case ReplacerFunc:
		if r == nil {
			return nil, nil
		}
		return r, nil
	case AllowList:
		if r == nil {
			return nil, nil
		}
		return r, nil
	case func(holder Value, key string, v Value) Value:
		if r == nil {
			return nil, nil
		}
		return ReplacerFunc(r), nil
	case func(key string, v Value) Value:
		if r == nil {
			return nil, nil
		}
		return ReplacerFunc(func(_ Value, key string, v Value) Value { return r(key, v) }), nil
	case []string:
		if r == nil {
			return nil, nil
		}
		return AllowList(r), nil
	case []any:
		if r == nil {
			return nil, nil
		}
		keys := make(AllowList, 0, len(r))
		for _, k := range r {
			if s, ok := k.(string); ok {
				keys = append(keys, s)
			}
		}
		return keys, nil
	default:
		return nil, fmt.Errorf("%w: replacer must be a function or a list of keys, got %T", ErrInvalidArgument, replacer)
	}
}
