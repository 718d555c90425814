package paramvalidation

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type (
	// RuleFunc is a function type that validates a single value and returns an error if invalid.
	RuleFunc func(value any) error

	// Rule is one validator attached to a request field.
	//
	// Check receives the request being validated, the declared field name and
	// the (possibly coerced) value. Returning an error marks the field as
	// failed; the error text becomes the reported message. Errors implementing
	// validation.InternalError are treated as defects and abort the pass.
	//
	// Describe documents the rule on the field's OpenAPI schema.
	Rule interface {
		Check(req any, field string, value any) error
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// FieldRules binds a struct field pointer to its validation rules.
	FieldRules struct {
		fieldPtr any
		rules    []Rule
	}

	// Ruler is implemented by request types that register rules for their
	// fields in code:
	//
	//	func (r *SignupRequest) Rules() []*FieldRules {
	//	    return []*FieldRules{
	//	        Field(&r.UserName, Required, Length(3, 32)),
	//	        Field(&r.UserAge, Min(0)),
	//	    }
	//	}
	Ruler interface {
		Rules() []*FieldRules
	}

	// ContextRuler is like Ruler but receives the context of the validation pass.
	ContextRuler interface {
		Rules(ctx context.Context) []*FieldRules
	}

	// ValueRuler is implemented by non-struct types (e.g. type Currency string)
	// that carry their own rules. The rules are appended to every field
	// declared with that type.
	ValueRuler interface {
		ValueRules() []Rule
	}

	// Source is where raw parameter values come from. Get returns nil when
	// the key is absent and must be stable for the duration of one pass.
	Source interface {
		Get(key string) any
	}
)

// valueCheck adapts a single-value ozzo rule to Rule.Check.
type valueCheck struct {
	validation.Rule
}

func (c valueCheck) Check(_ any, _ string, value any) error {
	return c.Validate(value)
}

// appendDescription adds s to the schema description, space separated.
func appendDescription(ref *openapi3.SchemaRef, s string) {
	if s == "" {
		return
	}
	if ref.Value.Description != "" && ref.Value.Description[len(ref.Value.Description)-1] != ' ' {
		ref.Value.Description += " "
	}
	ref.Value.Description += s
}

type emptySource struct{}

func (emptySource) Get(string) any { return nil }
