package paramvalidation

import (
	"context"
	"fmt"
	"reflect"
)

// Field creates a FieldRules binding a struct field pointer to its validation rules.
func Field[T any](fieldPtr *T, rules ...Rule) *FieldRules {
	return &FieldRules{
		fieldPtr: fieldPtr,
		rules:    rules,
	}
}

// findStructField returns the index of the direct field of structVal whose
// address is fieldPtr, or -1. The type comparison disambiguates the first
// field from the struct itself and from an embedded struct's first field.
func findStructField(structVal reflect.Value, fieldPtr reflect.Value) int {
	ptr := fieldPtr.Pointer()
	for i := range structVal.NumField() {
		f := structVal.Field(i)
		if f.Addr().Pointer() == ptr && f.Type() == fieldPtr.Elem().Type() {
			return i
		}
	}
	return -1
}

// registeredRules calls Rules() (or Rules(ctx)) on the addressable struct
// inst and groups the returned rules by field index, keeping their order.
func registeredRules(ctx context.Context, inst reflect.Value) (map[int][]Rule, error) {
	var fields []*FieldRules
	switch r := inst.Addr().Interface().(type) {
	case Ruler:
		fields = r.Rules()
	case ContextRuler:
		fields = r.Rules(ctx)
	default:
		return nil, nil
	}

	out := make(map[int][]Rule, len(fields))
	for i, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			return nil, fmt.Errorf("rule target for field index %d must be a pointer, got %s", i, fv.Kind())
		}
		idx := findStructField(inst, fv)
		if idx < 0 {
			return nil, fmt.Errorf("rule target for field index %d not found in struct %s", i, inst.Type())
		}
		out[idx] = append(out[idx], fr.rules...)
	}
	return out, nil
}

// valueRules returns the ValueRules of t (or of its element when t is a pointer).
func valueRules(t reflect.Type) []Rule {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if vr, ok := reflect.New(t).Interface().(ValueRuler); ok {
		return vr.ValueRules()
	}
	return nil
}
