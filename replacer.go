package beautify

import (
	"strings"
)

// Replacer customises which values are rendered. It is implemented by
// ReplacerFunc and AllowList only.
type Replacer interface {
	replacer()
}

// ReplacerFunc is called for every value before it is rendered, the root
// included (with key "" and a synthetic holder object). holder is the array
// or object the value was read from; array keys are decimal indexes.
// Returning Absent() drops an object member, or renders null in an array.
type ReplacerFunc func(holder Value, key string, v Value) Value

func (ReplacerFunc) replacer() {}

// AllowList selects and orders object members by name. Every object in the
// document is filtered, arrays are not. An empty AllowList renders every
// object as {}; a nil AllowList filters nothing.
type AllowList []string

func (AllowList) replacer() {}

// Unwrap returns v with every string that holds a JSON object or array
// replaced by the decoded value. Decoded values are unwrapped again up to
// depth levels; depth <= 0 unwraps a single level. Strings that fail to
// decode are kept as they are.
func Unwrap(v Value, depth int) Value {
	if depth <= 0 {
		depth = 1
	}
	return unwrapNested(v, depth)
}

func unwrapNested(v Value, depth int) Value {
	switch v.kind {
	case KindArray:
		elems := make([]Value, len(v.elems))
		for i, e := range v.elems {
			elems[i] = unwrapNested(e, depth)
		}
		v.elems = elems
		return v
	case KindObject:
		members := make([]Member, len(v.members))
		for i, m := range v.members {
			members[i] = Member{Key: m.Key, Value: unwrapNested(m.Value, depth)}
		}
		v.members = members
		return v
	case KindString:
		if depth > 0 {
			if parsed, ok := tryParseInlineJSON(v.str, depth-1); ok {
				return parsed
			}
		}
		return v
	default:
		return v
	}
}

func tryParseInlineJSON(s string, nextDepth int) (Value, bool) {
	trimmed := strings.TrimSpace(s)
	if !looksLikeJSON(trimmed) {
		return Value{}, false
	}
	parsed, err := Decode(strings.NewReader(trimmed))
	if err != nil {
		return Value{}, false
	}
	return unwrapNested(parsed, nextDepth), true
}

func looksLikeJSON(trimmed string) bool {
	if len(trimmed) < 2 {
		return false
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}

// UnwrapStrings returns a ReplacerFunc that applies Unwrap to the root value.
// It leaves nested calls alone so depth is honoured.
func UnwrapStrings(depth int) ReplacerFunc {
	return func(holder Value, key string, v Value) Value {
		if !holder.root {
			return v
		}
		return Unwrap(v, depth)
	}
}

// Chain composes replacer functions; each receives the previous result.
func Chain(fns ...ReplacerFunc) ReplacerFunc {
	return func(holder Value, key string, v Value) Value {
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			v = fn(holder, key, v)
		}
		return v
	}
}
