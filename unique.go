package paramvalidation

import (
	"errors"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type uniqueRule struct {
	f    func(i int) any
	desc string
}

// Unique returns a rule that checks all elements of a slice are unique
// according to f, which maps an index to a comparable key. A nil f
// compares the elements themselves.
func Unique(f func(i int) any, desc string) Rule {
	return uniqueRule{
		f:    f,
		desc: desc,
	}
}

func (r uniqueRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.UniqueItems = true
	appendDescription(ref, r.desc)
	return nil
}

func (r uniqueRule) Check(_ any, _ string, value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		seen := make(map[any]struct{}, rv.Len())
		for i := range rv.Len() {
			var key any
			if r.f != nil {
				key = r.f(i)
			} else {
				key = rv.Index(i).Interface()
			}
			if key != nil && !reflect.TypeOf(key).Comparable() {
				return validation.NewInternalError(errors.New("unique key is not comparable"))
			}
			seen[key] = struct{}{}
		}
		if len(seen) != rv.Len() {
			return errors.New("not unique")
		}
	default:
		return errors.New("must be a list")
	}
	return nil
}
