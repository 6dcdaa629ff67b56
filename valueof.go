package beautify

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Representer is implemented by Go values that choose their own JSON
// representation per key, like a toJSON method. ValueOf turns such values
// into composites carrying a Hook; RepresentJSON is called at render time
// with the key the value is rendered under and its result is converted
// with ValueOf. A conversion failure renders as absent.
type Representer interface {
	RepresentJSON(key string) any
}

var (
	valueType         = reflect.TypeFor[Value]()
	numberType        = reflect.TypeFor[json.Number]()
	representerType   = reflect.TypeFor[Representer]()
	marshalerType     = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// ValueOf converts a Go value following encoding/json conventions:
//
//   - nil, nil pointers, nil maps and nil slices are null
//   - json.Number keeps its literal; json.Marshaler output (including
//     json.RawMessage) is decoded with member order preserved
//   - encoding.TextMarshaler values are strings, []byte is base64
//   - maps become objects with sorted keys; struct fields follow declaration
//     order and honour `json:"name,omitempty,string"` tags and "-"
//   - funcs, channels, complex numbers and unsafe pointers are absent
//
// Values implementing Representer get a Hook instead.
func ValueOf(x any) (Value, error) {
	if x == nil {
		return Null(), nil
	}
	if v, ok := x.(Value); ok {
		return v, nil
	}
	return valueOf(reflect.ValueOf(x))
}

func valueOf(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return valueOf(rv.Elem())
	case reflect.Pointer:
		if rv.IsNil() {
			return Null(), nil
		}
	}
	switch rv.Type() {
	case valueType:
		if rv.CanInterface() {
			return rv.Interface().(Value), nil
		}
	case numberType:
		return numberLiteral(rv.String())
	}
	if v, ok, err := fromInterfaces(rv); ok || err != nil {
		return v, err
	}
	return structural(rv)
}

// fromInterfaces handles the custom representation interfaces, trying the
// pointer receiver for addressable values.
func fromInterfaces(rv reflect.Value) (Value, bool, error) {
	if !rv.CanInterface() {
		return Value{}, false, nil
	}
	t := rv.Type()
	target := rv
	if rv.Kind() != reflect.Pointer && rv.CanAddr() {
		pt := reflect.PointerTo(t)
		if !implementsAny(t) && implementsAny(pt) {
			target = rv.Addr()
		}
	}
	switch x := target.Interface().(type) {
	case Representer:
		v, err := represent(rv, x)
		return v, true, err
	case json.Marshaler:
		raw, err := x.MarshalJSON()
		if err != nil {
			return Value{}, true, fmt.Errorf("%w: %s: %w", ErrUnsupportedValue, t, err)
		}
		v, err := valueFromJSON(raw)
		if err != nil {
			return Value{}, true, fmt.Errorf("%s.MarshalJSON: %w", t, err)
		}
		return v, true, nil
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return Value{}, true, fmt.Errorf("%w: %s: %w", ErrUnsupportedValue, t, err)
		}
		return String(string(text)), true, nil
	}
	return Value{}, false, nil
}

func implementsAny(t reflect.Type) bool {
	return t.Implements(representerType) || t.Implements(marshalerType) || t.Implements(textMarshalerType)
}

func represent(rv reflect.Value, r Representer) (Value, error) {
	base, err := structural(rv)
	if err != nil {
		return Value{}, err
	}
	if !base.composite() {
		base = Value{kind: KindObject}
	}
	return WithHook(base, func(key string) Value {
		v, err := ValueOf(r.RepresentJSON(key))
		if err != nil {
			return Value{}
		}
		return v
	}), nil
}

// structural converts rv by its kind alone.
func structural(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32:
		return float32Value(float32(rv.Float())), nil
	case reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return valueOf(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		if isByteSlice(rv.Type()) {
			return String(base64.StdEncoding.EncodeToString(rv.Bytes())), nil
		}
		return sequence(rv)
	case reflect.Array:
		return sequence(rv)
	case reflect.Map:
		return mapObject(rv)
	case reflect.Struct:
		return structObject(rv)
	default:
		// Func, Chan, Complex64, Complex128, UnsafePointer.
		return Value{}, nil
	}
}

func isByteSlice(t reflect.Type) bool {
	elem := t.Elem()
	if elem.Kind() != reflect.Uint8 {
		return false
	}
	pe := reflect.PointerTo(elem)
	return !pe.Implements(marshalerType) && !pe.Implements(textMarshalerType)
}

func sequence(rv reflect.Value) (Value, error) {
	n := rv.Len()
	elems := make([]Value, n)
	for i := range n {
		v, err := valueOf(rv.Index(i))
		if err != nil {
			return Value{}, fmt.Errorf("[%d]: %w", i, err)
		}
		elems[i] = v
	}
	return Value{kind: KindArray, elems: elems}, nil
}

func mapObject(rv reflect.Value) (Value, error) {
	kt := rv.Type().Key()
	if !validMapKey(kt) {
		return Value{}, fmt.Errorf("%w: map key type %s", ErrUnsupportedValue, kt)
	}
	if rv.IsNil() {
		return Null(), nil
	}
	members := make([]Member, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := mapKey(iter.Key())
		if err != nil {
			return Value{}, err
		}
		v, err := valueOf(iter.Value())
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", strconv.Quote(key), err)
		}
		members = append(members, Member{Key: key, Value: v})
	}
	slices.SortFunc(members, func(a, b Member) int {
		return strings.Compare(a.Key, b.Key)
	})
	return Value{kind: KindObject, members: members}, nil
}

func validMapKey(kt reflect.Type) bool {
	switch kt.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return kt.Implements(textMarshalerType)
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if k.Kind() == reflect.Pointer && k.IsNil() {
		return "", nil
	}
	if k.CanInterface() {
		if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
			text, err := tm.MarshalText()
			if err != nil {
				return "", fmt.Errorf("%w: map key: %w", ErrUnsupportedValue, err)
			}
			return string(text), nil
		}
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	default:
		return "", fmt.Errorf("%w: map key type %s", ErrUnsupportedValue, k.Type())
	}
}

type structField struct {
	name      string
	index     []int
	omitEmpty bool
	quoted    bool
}

var fieldCache sync.Map // map[reflect.Type][]structField

func structObject(rv reflect.Value) (Value, error) {
	fields := cachedFields(rv.Type())
	members := make([]Member, 0, len(fields))
	for _, f := range fields {
		fv, ok := fieldByIndex(rv, f.index)
		if !ok {
			continue
		}
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		v, err := valueOf(fv)
		if err != nil {
			return Value{}, fmt.Errorf("%s.%s: %w", rv.Type(), f.name, err)
		}
		if f.quoted {
			v = quotedScalar(v)
		}
		members = append(members, Member{Key: f.name, Value: v})
	}
	return Value{kind: KindObject, members: members}, nil
}

// quotedScalar implements the ",string" tag option.
func quotedScalar(v Value) Value {
	switch v.kind {
	case KindBool, KindNumber:
		text, _ := (&stringifier{}).stringify(Value{}, "", v, "")
		return String(text)
	case KindString:
		return String(Quote(v.str))
	default:
		return v
	}
}

func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func cachedFields(t reflect.Type) []structField {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]structField)
	}
	fields := collectFields(t, nil, map[reflect.Type]bool{t: true})
	f, _ := fieldCache.LoadOrStore(t, fields)
	return f.([]structField)
}

// collectFields lists the encodable fields of t in declaration order,
// inlining untagged embedded structs. Names declared directly on t shadow
// promoted ones; among promoted fields the first declared wins.
func collectFields(t reflect.Type, index []int, visiting map[reflect.Type]bool) []structField {
	claimed := make(map[string]bool)
	for i := range t.NumField() {
		sf := t.Field(i)
		if name, ok := directFieldName(sf); ok {
			claimed[name] = true
		}
	}

	var fields []structField
	seen := make(map[string]bool)
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fieldIndex := append(slices.Clip(index), i)

		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if !sf.IsExported() && sf.Type.Kind() == reflect.Pointer {
					continue
				}
				if visiting[ft] {
					continue
				}
				visiting[ft] = true
				for _, f := range collectFields(ft, fieldIndex, visiting) {
					if claimed[f.name] || seen[f.name] {
						continue
					}
					seen[f.name] = true
					fields = append(fields, f)
				}
				delete(visiting, ft)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, structField{
			name:      name,
			index:     fieldIndex,
			omitEmpty: hasOption(opts, "omitempty"),
			quoted:    hasOption(opts, "string") && quotable(sf.Type),
		})
	}
	return fields
}

func directFieldName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if sf.Anonymous && name == "" {
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			return "", false
		}
	}
	if !sf.IsExported() {
		return "", false
	}
	if name == "" {
		name = sf.Name
	}
	return name, true
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

func quotable(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
