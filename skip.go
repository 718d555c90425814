package paramvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// SkipRule stops evaluation of the rules that follow it on the same field.
type SkipRule struct {
	skip bool
	desc string
}

// Skip returns a rule that skips all subsequent rules and adds desc to the schema description.
func Skip(desc string) *SkipRule {
	return &SkipRule{skip: true, desc: desc}
}

// When makes the skip conditional.
func (r *SkipRule) When(condition bool) *SkipRule {
	r.skip = condition
	return r
}

// Check implements [Rule]; it never fails.
func (r *SkipRule) Check(any, string, any) error {
	return nil
}

// Describe implements [Rule].
func (r *SkipRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}

func (r *SkipRule) skipRest() bool {
	return r.skip
}
