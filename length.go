package paramvalidation

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type lengthRule struct {
	valueCheck
	min, max int
}

// Length returns a rule that checks a string's rune length, or an array's
// element count, is within [lo, hi]. hi == 0 means no upper bound.
func Length(lo, hi int) Rule {
	msg := fmt.Sprintf("length must be between %d and %d", lo, hi)
	if hi == 0 {
		msg = fmt.Sprintf("length must be at least %d", lo)
	}
	return lengthRule{
		valueCheck{validation.RuneLength(lo, hi).Error(msg)},
		lo,
		hi,
	}
}

func (r lengthRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	lo := uint64(r.min)
	if ref.Value.Type.Is(openapi3.TypeArray) {
		ref.Value.MinItems = lo
		if r.max > 0 {
			hi := uint64(r.max)
			ref.Value.MaxItems = &hi
		}
		return nil
	}
	ref.Value.MinLength = lo
	if r.max > 0 {
		hi := uint64(r.max)
		ref.Value.MaxLength = &hi
	}
	return nil
}
