package paramvalidation

import (
	"context"
	"fmt"
	"reflect"
)

// Discovery is the result of one discovery pass over a request type.
type Discovery struct {
	// Type is the request struct type.
	Type reflect.Type
	// Fields holds one descriptor per declared field, in declaration order.
	Fields []*FieldDescriptor
	// Names are the declared field names, in the same order as Fields.
	Names []string
}

// Discover enumerates the exported fields of a request type in declaration
// order and builds their descriptors. v may be a struct pointer, a struct
// value or a reflect.Type; rules registered through Rules() are bound to v
// when it is a live pointer and to a fresh zero value otherwise.
//
// The embedded BaseRequest is skipped. Discover does not touch the
// request's field list; Advisor records Names on the request explicitly.
// A nil reg uses the built-in rule registry.
func Discover(v any, reg *Registry) (*Discovery, error) {
	return discover(context.Background(), v, reg)
}

// FieldDescriptors returns the field descriptors of a request pointer,
// value or reflect.Type using the built-in rule registry.
func FieldDescriptors(v any) ([]*FieldDescriptor, error) {
	d, err := Discover(v, nil)
	if err != nil {
		return nil, err
	}
	return d.Fields, nil
}

func discover(ctx context.Context, v any, reg *Registry) (*Discovery, error) {
	if reg == nil {
		reg = builtin
	}

	inst, err := structValue(v)
	if err != nil {
		return nil, err
	}
	t := inst.Type()

	registered, err := registeredRules(ctx, inst)
	if err != nil {
		return nil, &TypeCoercionError{Type: t.String(), Cause: err}
	}

	d := &Discovery{Type: t}
	keys := make(map[string]string, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if isReserved(sf) || !sf.IsExported() {
			continue
		}

		name := declaredName(sf)
		key := ExternalKey(name)
		if prev, ok := keys[key]; ok {
			return nil, &TypeCoercionError{
				Field: name,
				Type:  t.String(),
				Cause: fmt.Errorf("%w: %q and %q both map to %q", ErrKeyCollision, prev, name, key),
			}
		}
		keys[key] = name

		st, err := Classify(sf.Type)
		if err != nil {
			return nil, &TypeCoercionError{Field: name, Type: sf.Type.String(), Cause: err}
		}

		rules, err := reg.Parse(sf.Type, sf.Tag.Get("validate"))
		if err != nil {
			return nil, &TypeCoercionError{Field: name, Type: sf.Type.String(), Cause: err}
		}
		rules = append(rules, registered[i]...)
		rules = append(rules, valueRules(sf.Type)...)

		d.Fields = append(d.Fields, &FieldDescriptor{
			Name:  name,
			Key:   key,
			Type:  st,
			Field: sf,
			Rules: rules,
		})
		d.Names = append(d.Names, name)
	}
	return d, nil
}

// structValue resolves v to an addressable struct value.
func structValue(v any) (reflect.Value, error) {
	var t reflect.Type
	switch x := v.(type) {
	case nil:
		return reflect.Value{}, &TypeCoercionError{Cause: ErrNotStruct}
	case reflect.Type:
		t = x
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
			return rv.Elem(), nil
		}
		if rv.Kind() == reflect.Struct {
			cp := reflect.New(rv.Type()).Elem()
			cp.Set(rv)
			return cp, nil
		}
		t = rv.Type()
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return reflect.Value{}, &TypeCoercionError{Type: t.String(), Cause: ErrNotStruct}
	}
	return reflect.New(t).Elem(), nil
}
