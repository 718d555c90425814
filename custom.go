package paramvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"
)

type custom struct {
	f    func(req any, field string, value any) error
	desc string
}

// Custom returns a rule that uses f for validation and desc for documentation.
func Custom(f func(any) error, desc string) Rule {
	return custom{
		f:    func(_ any, _ string, value any) error { return f(value) },
		desc: desc,
	}
}

// By wraps a RuleFunc into a Rule.
func By(f RuleFunc, desc string) Rule {
	return Custom(f, desc)
}

// ByRequest returns a rule that sees the whole request, for checks that
// depend on other fields. Fields are assigned in declaration order, so
// only fields declared before this one hold their new values.
func ByRequest(f func(req any, field string, value any) error, desc string) Rule {
	return custom{f: f, desc: desc}
}

func (r custom) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}

func (r custom) Check(req any, field string, value any) error {
	return r.f(req, field, value)
}
