package paramvalidation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type thresholdRule struct {
	rule      validation.ThresholdRule
	threshold any
	min       bool
}

// Min returns a rule that checks the value is greater than or equal to threshold.
// The threshold must have the same kind family as the field (int, uint or float).
// Absent and empty values pass; combine with Required to reject them.
func Min(threshold any) Rule {
	return thresholdRule{
		rule:      validation.Min(threshold).Error(fmt.Sprintf("must be >= %v", threshold)),
		threshold: threshold,
		min:       true,
	}
}

// Max returns a rule that checks the value is less than or equal to threshold.
func Max(threshold any) Rule {
	return thresholdRule{
		rule:      validation.Max(threshold).Error(fmt.Sprintf("must be <= %v", threshold)),
		threshold: threshold,
		min:       false,
	}
}

func (r thresholdRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if ref.Value.Type.Is(openapi3.TypeString) {
		ref.Value.Format = fmt.Sprintf("%T", r.threshold)
	}
	f, err := getFloat(r.threshold)
	if err != nil {
		return err
	}
	if r.min {
		ref.Value.Min = &f
	} else {
		ref.Value.Max = &f
	}
	return nil
}

var floatType = reflect.TypeOf(float64(0))

func getFloat(unk any) (float64, error) {
	v := reflect.Indirect(reflect.ValueOf(unk))
	if !v.IsValid() || !v.Type().ConvertibleTo(floatType) {
		return 0, fmt.Errorf("cannot convert %T to float64", unk)
	}
	return v.Convert(floatType).Float(), nil
}

// Check compares numeric values directly and parses numeric strings
// (string fields, raw values left uncoerced) to the threshold's kind first.
func (r thresholdRule) Check(_ any, _ string, value any) error {
	value, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(value) {
		return nil
	}

	if reflect.ValueOf(value).Kind() != reflect.String {
		return r.rule.Validate(value)
	}

	s := reflect.ValueOf(value).String()
	var err error
	switch reflect.ValueOf(r.threshold).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errors.New("must be an integer")
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return errors.New("must be an unsigned integer")
		}
	case reflect.Float32, reflect.Float64:
		value, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("must be a number")
		}
	}
	return r.rule.Validate(value)
}
