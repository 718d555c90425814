package paramvalidation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Each returns a rule that applies rules to every element of a slice or array.
// The first failing element is reported with its index.
func Each(rules ...Rule) Rule {
	return &eachRule{rules}
}

type eachRule struct {
	rules []Rule
}

func (r *eachRule) Check(req any, field string, value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return errors.New("must be a list")
	}
	for i := range rv.Len() {
		elem := rv.Index(i).Interface()
		for _, rule := range r.rules {
			if err := rule.Check(req, field, elem); err != nil {
				return fmt.Errorf("%d: %w", i, err)
			}
		}
	}
	return nil
}

// Describe documents the element rules on the items schema when there is one.
func (r *eachRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	target := ref
	if ref.Value.Items != nil && ref.Value.Items.Value != nil {
		target = ref.Value.Items
	}
	for i := range r.rules {
		if err := r.rules[i].Describe(name, schema, target); err != nil {
			return err
		}
	}
	return nil
}
