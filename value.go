package beautify

import (
	"math"
	"slices"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindAbsent marks a value with no JSON representation (functions,
	// channels, a replacer that dropped the value). It is the zero Kind.
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindAbsent: "absent",
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Field is shorthand for Member{Key: key, Value: v}.
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Hook produces the representation of a composite value when it is rendered
// under key. It plays the role of a toJSON method.
type Hook func(key string) Value

// Value is an immutable JSON-shaped datum. The zero Value is absent.
//
// Values are safe to share between goroutines: constructors copy their
// inputs and no method mutates the receiver.
type Value struct {
	kind    Kind
	b       bool
	root    bool // synthetic holder of a document's root
	num     float64
	str     string // string payload, or the literal text of a number
	elems   []Value
	members []Member
	hook    Hook
}

// Absent returns the value that renders as nothing.
func Absent() Value { return Value{} }

// Null returns the JSON null.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a JSON number. NaN and infinities render as null.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a JSON number that keeps every digit of i.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i), str: strconv.FormatInt(i, 10)}
}

// Uint returns a JSON number that keeps every digit of u.
func Uint(u uint64) Value {
	return Value{kind: KindNumber, num: float64(u), str: strconv.FormatUint(u, 10)}
}

func float32Value(f float32) Value {
	v := Value{kind: KindNumber, num: float64(f)}
	if !math.IsInf(v.num, 0) && !math.IsNaN(v.num) {
		v.str = formatNumber(v.num, 32)
	}
	return v
}

// Array returns a JSON array holding a copy of elems.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, elems: slices.Clone(elems)}
}

// Object returns a JSON object with members in the given order. A repeated
// key replaces the earlier value but keeps the earlier position.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	var index map[string]int
	if len(members) > 8 {
		index = make(map[string]int, len(members))
	}
	for _, m := range members {
		out, index = setMember(out, index, m)
	}
	return Value{kind: KindObject, members: out}
}

func setMember(members []Member, index map[string]int, m Member) ([]Member, map[string]int) {
	if index != nil {
		if i, ok := index[m.Key]; ok {
			members[i].Value = m.Value
			return members, index
		}
		index[m.Key] = len(members)
		return append(members, m), index
	}
	for i := range members {
		if members[i].Key == m.Key {
			members[i].Value = m.Value
			return members, index
		}
	}
	return append(members, m), index
}

// WithHook attaches hook to an array or object. Rendering calls the hook with
// the value's key and renders its result instead. Scalars are returned
// unchanged because only composites carry the capability.
func WithHook(v Value, hook Hook) Value {
	if !v.composite() {
		return v
	}
	v.hook = hook
	return v
}

func (v Value) composite() bool {
	return v.kind == KindArray || v.kind == KindObject
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v renders as nothing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// HasHook reports whether v carries a representation hook.
func (v Value) HasHook() bool { return v.hook != nil }

// Bool returns the boolean payload, false for other kinds.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Float returns the numeric payload, 0 for other kinds.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Text returns the string payload, "" for other kinds.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Len returns the number of elements or members, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns element i of an array, or an absent value when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.elems) {
		return Value{}
	}
	return v.elems[i]
}

// Lookup returns the member named key of an object.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for i := range v.members {
		if v.members[i].Key == key {
			return v.members[i].Value, true
		}
	}
	return Value{}, false
}

// Get is Lookup without the presence flag; missing members are absent.
func (v Value) Get(key string) Value {
	m, _ := v.Lookup(key)
	return m
}

// Elems returns a copy of the array elements.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	return slices.Clone(v.elems)
}

// Members returns a copy of the object members in order.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return slices.Clone(v.members)
}

// Keys returns the object member names in order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i := range v.members {
		keys[i] = v.members[i].Key
	}
	return keys
}

// String renders v as compact JSON. Absent values yield "".
func (v Value) String() string {
	return Render(v, compactOptions)
}

// MarshalJSON lets a Value be embedded in documents encoded by encoding/json.
// Absent values encode as null since encoding/json cannot omit them.
func (v Value) MarshalJSON() ([]byte, error) {
	s := Render(v, compactOptions)
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

func (v Value) numberText() string {
	if v.str != "" {
		return v.str
	}
	return formatNumber(v.num, 64)
}

// rootHolder wraps v the way the top-level call sees it: as the member ""
// of a synthetic object.
func rootHolder(v Value) Value {
	return Value{kind: KindObject, members: []Member{{Key: "", Value: v}}, root: true}
}
