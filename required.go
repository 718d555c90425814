package paramvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type requiredRule struct {
	valueCheck
}

// Required fails when the value is absent or empty ("", 0, false, empty slice).
var Required Rule = requiredRule{valueCheck{validation.Required.Error("required")}}

func (r requiredRule) Describe(name string, schema *openapi3.Schema, _ *openapi3.SchemaRef) error {
	for _, n := range schema.Required {
		if n == name {
			return nil
		}
	}
	schema.Required = append(schema.Required, name)
	return nil
}
