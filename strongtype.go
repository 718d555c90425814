package paramvalidation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

// Kind is the coarse classification of a declared field type.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindScalar covers string, integer, float and bool types.
	KindScalar
	// KindArray covers slices and arrays (except []byte).
	KindArray
	// KindObject covers structs, maps, interfaces and []byte.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// StrongType is the classified declared type of a request field.
type StrongType struct {
	Kind Kind
	// Type is the declared type, pointer included.
	Type reflect.Type
	// Base is Type with the pointer removed when Optional.
	Base reflect.Type
	// Optional is set for pointer fields.
	Optional bool
	// Elem is the element type of an array.
	Elem *StrongType
}

// IsBuiltin reports whether the type is a scalar build-in (string, number, bool).
func (t StrongType) IsBuiltin() bool { return t.Kind == KindScalar }

// IsArray reports whether the type is a slice or array.
func (t StrongType) IsArray() bool { return t.Kind == KindArray }

func (t StrongType) String() string {
	if t.Type == nil {
		return "<nil>"
	}
	return t.Type.String()
}

// required returns t without the Optional pointer level.
func (t StrongType) required() StrongType {
	t.Type = t.Base
	t.Optional = false
	return t
}

// Classify inspects a declared field type. Channels, functions, complex
// numbers, uintptr, unsafe pointers and pointers to pointers are rejected
// with a *TypeCoercionError.
func Classify(t reflect.Type) (StrongType, error) {
	if t == nil {
		return StrongType{}, &TypeCoercionError{Cause: ErrUnsupportedType}
	}

	st := StrongType{Type: t, Base: t}
	if t.Kind() == reflect.Ptr {
		st.Optional = true
		st.Base = t.Elem()
	}

	switch base := st.Base; base.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		st.Kind = KindScalar
	case reflect.Slice, reflect.Array:
		if base.Kind() == reflect.Slice && base.Elem().Kind() == reflect.Uint8 {
			st.Kind = KindObject
			break
		}
		elem, err := Classify(base.Elem())
		if err != nil {
			return StrongType{}, &TypeCoercionError{Type: t.String(), Cause: err}
		}
		st.Kind = KindArray
		st.Elem = &elem
	case reflect.Struct, reflect.Map, reflect.Interface:
		st.Kind = KindObject
	default:
		return StrongType{}, &TypeCoercionError{Type: t.String(), Cause: ErrUnsupportedType}
	}
	return st, nil
}

// Coerce converts raw into a value of st's declared type.
//
// A nil raw value is absent and stays nil, as does an empty string for a
// non-string scalar. Scalars accept strings, []string (first element),
// json.Number, numbers and bools; booleans also accept on/off and yes/no.
// Arrays accept already typed values, []string, []any and comma separated
// strings, coercing every element. Objects accept assignable values and
// decoded JSON objects. Anything else is a *TypeCoercionError.
func Coerce(st StrongType, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch st.Kind {
	case KindScalar:
		return coerceScalar(st, raw)
	case KindArray:
		return coerceArray(st, raw)
	case KindObject:
		return coerceObject(st, raw)
	}
	return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: ErrUnsupportedType}
}

func coerceScalar(st StrongType, raw any) (any, error) {
	if reflect.TypeOf(raw).AssignableTo(st.Type) {
		return raw, nil
	}

	text, ok := scalarText(raw)
	if !ok {
		return nil, &TypeCoercionError{Type: st.String(), Value: raw}
	}

	base := st.Base
	out := reflect.New(base).Elem()
	if base.Kind() != reflect.String {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	}

	switch base.Kind() {
	case reflect.String:
		out.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		neg, digits, ok := integerText(text)
		if !ok {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("%q is not an integer", text)}
		}
		if neg {
			digits = "-" + digits
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil || out.OverflowInt(n) {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("overflows %s", base)}
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		neg, digits, ok := integerText(text)
		if !ok || (neg && digits != "0") {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("%q is not an unsigned integer", text)}
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil || out.OverflowUint(n) {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("overflows %s", base)}
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if !govalidator.IsFloat(text) {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("%q is not a number", text)}
		}
		f, err := govalidator.ToFloat(text)
		if err != nil {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: err}
		}
		if out.OverflowFloat(f) {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("overflows %s", base)}
		}
		out.SetFloat(f)
	case reflect.Bool:
		b, err := toBool(text)
		if err != nil {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: err}
		}
		out.SetBool(b)
	default:
		return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: ErrUnsupportedType}
	}

	if st.Optional {
		ptr := reflect.New(base)
		ptr.Elem().Set(out)
		return ptr.Interface(), nil
	}
	return out.Interface(), nil
}

// scalarText returns the textual form of a raw scalar input.
func scalarText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case []string:
		if len(v) == 0 {
			return "", true
		}
		return v[0], true
	case []any:
		if len(v) == 0 {
			return "", true
		}
		return scalarText(v[0])
	}
	switch reflect.TypeOf(raw).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return govalidator.ToString(raw), true
	}
	return "", false
}

// integerText splits a decimal integer into its sign and its digits with
// leading zeros dropped, so "007" and "-007" are accepted.
func integerText(text string) (neg bool, digits string, ok bool) {
	switch {
	case strings.HasPrefix(text, "-"):
		neg, text = true, text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}
	if text == "" || !govalidator.IsNumeric(text) {
		return false, "", false
	}
	digits = strings.TrimLeft(text, "0")
	if digits == "" {
		digits = "0"
	}
	return neg, digits, true
}

// toBool accepts strconv.ParseBool forms plus on/off and yes/no.
func toBool(s string) (bool, error) {
	b, err := govalidator.ToBoolean(s)
	if err == nil {
		return b, nil
	}
	switch strings.ToLower(s) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}

func coerceArray(st StrongType, raw any) (any, error) {
	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(st.Type) {
		return raw, nil
	}

	var items []any
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		for _, part := range strings.Split(v, ",") {
			items = append(items, strings.TrimSpace(part))
		}
	case json.Number:
		items = []any{v}
	case []string:
		items = make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
	case []any:
		items = v
	default:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw}
		}
		items = make([]any, rv.Len())
		for i := range rv.Len() {
			items[i] = rv.Index(i).Interface()
		}
	}

	base := st.Base
	var out reflect.Value
	if base.Kind() == reflect.Array {
		if len(items) != base.Len() {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("want %d elements, got %d", base.Len(), len(items))}
		}
		out = reflect.New(base).Elem()
	} else {
		out = reflect.MakeSlice(base, len(items), len(items))
	}

	for i, item := range items {
		v, err := Coerce(*st.Elem, item)
		if err != nil {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("element %d: %w", i, err)}
		}
		if v == nil {
			continue
		}
		ev := reflect.ValueOf(v)
		if !ev.Type().AssignableTo(st.Elem.Type) {
			return nil, &TypeCoercionError{Type: st.String(), Value: raw, Cause: fmt.Errorf("element %d: cannot use %T", i, v)}
		}
		out.Index(i).Set(ev)
	}

	if st.Optional {
		ptr := reflect.New(base)
		ptr.Elem().Set(out)
		return ptr.Interface(), nil
	}
	return out.Interface(), nil
}

func coerceObject(st StrongType, raw any) (any, error) {
	if reflect.TypeOf(raw).AssignableTo(st.Type) {
		return raw, nil
	}
	if _, ok := raw.(map[string]any); ok {
		return raw, nil
	}
	return nil, &TypeCoercionError{Type: st.String(), Value: raw}
}
