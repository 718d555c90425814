package paramvalidation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type stringRule struct {
	valueCheck
	desc string
}

// NewStringRuleWithError returns a string rule with a custom error and schema description.
func NewStringRuleWithError(validator func(string) bool, err validation.Error, desc string) Rule {
	return stringRule{
		valueCheck{validation.NewStringRuleWithError(validator, err)},
		desc,
	}
}

// NewStringRule returns a string rule using desc as both the error message and schema description.
func NewStringRule(validator func(string) bool, desc string) Rule {
	return stringRule{
		valueCheck{validation.NewStringRule(validator, desc)},
		desc,
	}
}

// NewStringRuleDecimalMax limits the number of decimal places in a numeric string.
func NewStringRuleDecimalMax(i uint) Rule {
	desc := fmt.Sprintf("no more than %d decimals", i)
	return NewStringRule(func(s string) bool {
		_, frac, ok := strings.Cut(s, ".")
		return !ok || len(frac) <= int(i)
	}, desc)
}

func (r stringRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}

type matchRule struct {
	valueCheck
	re *regexp.Regexp
}

// Match returns a rule that checks a string value matches re.
func Match(re *regexp.Regexp) Rule {
	return matchRule{
		valueCheck{validation.Match(re).Error("must match " + re.String())},
		re,
	}
}

func (r matchRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Pattern = r.re.String()
	return nil
}

type formatRule struct {
	valueCheck
	format string
}

// Format wraps an ozzo string rule (typically one of the is package rules)
// and documents it as the schema format.
//
//	Format("email", is.EmailFormat)
func Format(format string, rule validation.Rule) Rule {
	return formatRule{valueCheck{rule}, format}
}

func (r formatRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Format = r.format
	return nil
}
