package paramvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// docRule only documents the field; it never fails.
type docRule struct {
	apply func(ref *openapi3.SchemaRef)
}

func (r docRule) Check(any, string, any) error {
	return nil
}

func (r docRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	r.apply(ref)
	return nil
}

// Describe appends desc to the field's schema description.
func Describe(desc string) Rule {
	return docRule{func(ref *openapi3.SchemaRef) { appendDescription(ref, desc) }}
}

// Example sets the field's schema example.
func Example(ex any) Rule {
	return docRule{func(ref *openapi3.SchemaRef) { ref.Value.Example = ex }}
}

// Default documents the default the handler applies to an absent
// parameter. The engine itself never fills in defaults.
func Default(v any) Rule {
	return docRule{func(ref *openapi3.SchemaRef) { ref.Value.Default = v }}
}

// Deprecate marks the field as deprecated in the schema.
func Deprecate() Rule {
	return docRule{func(ref *openapi3.SchemaRef) { ref.Value.Deprecated = true }}
}
