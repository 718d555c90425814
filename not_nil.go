package paramvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NotNil requires the parameter to be present, allowing empty values.
var NotNil Rule = notNilRule{valueCheck{validation.NotNil}}

type notNilRule struct {
	valueCheck
}

func (r notNilRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Nullable = false
	return nil
}
