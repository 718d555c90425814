package paramvalidation

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// In returns a rule that checks the value is one of values. Values must
// have the field's type (In(1, 2) for an int field, In("a") for a string).
func In(values ...any) Rule {
	want := make([]string, len(values))
	for i := range values {
		want[i] = fmt.Sprintf("'%v'", values[i])
	}
	return &inRule{
		rule:   validation.In(values...).Error(fmt.Sprintf("must be one of %s", strings.Join(want, ", "))),
		values: values,
	}
}

type inRule struct {
	rule   validation.InRule
	values []any
}

func (r *inRule) Check(_ any, _ string, value any) error {
	if err := r.rule.Validate(value); err != nil {
		v, _ := validation.Indirect(value)
		return fmt.Errorf("%s got '%v'", err, v)
	}
	return nil
}

func (r *inRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = r.values
	return nil
}
