package paramvalidation

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// WhenRule validates conditionally: it applies one set of rules when the
// condition holds, and an optional alternative set (via [WhenRule.Else])
// otherwise. Use [When] or [WhenFunc] to create one.
type WhenRule struct {
	cond      func(req any) bool
	desc      string
	whenRules []Rule
	elseRules []Rule
}

// When returns a conditional rule with a condition fixed when the rules
// are built. Rules() runs before parameters are assigned, so conditions on
// other fields of the request belong in [WhenFunc].
func When(condition bool, desc string, rules ...Rule) *WhenRule {
	return WhenFunc(func(any) bool { return condition }, desc, rules...)
}

// WhenFunc returns a conditional rule whose condition is evaluated against
// the request at check time.
func WhenFunc(cond func(req any) bool, desc string, rules ...Rule) *WhenRule {
	return &WhenRule{
		cond:      cond,
		desc:      desc,
		whenRules: rules,
	}
}

// Else specifies alternative rules to apply when the condition is false.
func (r *WhenRule) Else(rules ...Rule) *WhenRule {
	r.elseRules = rules
	return r
}

// Check implements [Rule].
func (r *WhenRule) Check(req any, field string, value any) error {
	rules := r.elseRules
	if r.cond(req) {
		rules = r.whenRules
	}
	for _, rule := range rules {
		if err := rule.Check(req, field, value); err != nil {
			return err
		}
	}
	return nil
}

// describeRules calls Describe on each rule using a scratch schema/ref,
// then summarizes the schema mutations as text.
func describeRules(name string, rules []Rule) (string, error) {
	if len(rules) == 0 {
		return "", nil
	}

	schema := openapi3.NewSchema()
	ref := &openapi3.SchemaRef{Value: openapi3.NewSchema()}
	for _, r := range rules {
		if err := r.Describe(name, schema, ref); err != nil {
			return "", err
		}
	}

	var parts []string
	if ref.Value.Description != "" {
		parts = append(parts, ref.Value.Description)
	}
	if len(schema.Required) > 0 {
		parts = append(parts, "required")
	}
	if ref.Value.Min != nil {
		parts = append(parts, fmt.Sprintf("min %g", *ref.Value.Min))
	}
	if ref.Value.Max != nil {
		parts = append(parts, fmt.Sprintf("max %g", *ref.Value.Max))
	}
	if len(ref.Value.Enum) > 0 {
		vals := make([]string, len(ref.Value.Enum))
		for i, v := range ref.Value.Enum {
			vals[i] = fmt.Sprint(v)
		}
		parts = append(parts, "one of ["+strings.Join(vals, ", ")+"]")
	}
	if ref.Value.UniqueItems {
		parts = append(parts, "unique")
	}
	return strings.Join(parts, ", "), nil
}

// Describe implements [Rule] by appending a summary of both branches to
// the schema description.
func (r *WhenRule) Describe(name string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	desc, err := describeRules(name, r.whenRules)
	if err != nil {
		return err
	}
	if desc != "" {
		if r.desc != "" {
			desc = fmt.Sprintf("when %s: %s", r.desc, desc)
		}
		appendDescription(ref, desc)
	}

	desc, err = describeRules(name, r.elseRules)
	if err != nil {
		return err
	}
	if desc != "" {
		appendDescription(ref, "else: "+desc)
	}
	return nil
}
