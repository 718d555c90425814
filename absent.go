package paramvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Nil requires the parameter to be absent.
var Nil Rule = absentRule{valueCheck{validation.Nil}, "null"}

// Empty requires a present parameter to be empty.
var Empty Rule = absentRule{valueCheck{validation.Empty}, "empty"}

type absentRule struct {
	valueCheck
	desc string
}

func (r absentRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}
