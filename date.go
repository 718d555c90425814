package paramvalidation

import (
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateRule validates that a string value is a date in the given layout.
// Use [Date] to create one, then chain [DateRule.Min] and [DateRule.Max].
type DateRule struct {
	rule     validation.DateRule
	layout   string
	min, max time.Time
}

// Date creates a date rule with the given layout.
func Date(layout string) *DateRule {
	return &DateRule{
		rule:   validation.Date(layout).Error("must be a date in the format " + layout),
		layout: layout,
	}
}

// Min sets the earliest allowed date.
func (r *DateRule) Min(t time.Time) *DateRule {
	r.min = t
	r.rule = r.rule.Min(t).RangeError(r.rangeMessage())
	return r
}

// Max sets the latest allowed date.
func (r *DateRule) Max(t time.Time) *DateRule {
	r.max = t
	r.rule = r.rule.Max(t).RangeError(r.rangeMessage())
	return r
}

func (r *DateRule) rangeMessage() string {
	switch {
	case !r.min.IsZero() && !r.max.IsZero():
		return "must be between " + r.min.Format(r.layout) + " and " + r.max.Format(r.layout)
	case !r.min.IsZero():
		return "must not be before " + r.min.Format(r.layout)
	default:
		return "must not be after " + r.max.Format(r.layout)
	}
}

// Check implements [Rule].
func (r *DateRule) Check(_ any, _ string, value any) error {
	return r.rule.Validate(value)
}

// Describe implements [Rule] by setting the format and date range on the schema.
func (r *DateRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Format = r.layout
	if !r.min.IsZero() {
		appendDescription(ref, ">= "+r.min.Format(r.layout))
	}
	if !r.max.IsZero() {
		appendDescription(ref, "<= "+r.max.Format(r.layout))
	}
	return nil
}
