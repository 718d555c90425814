package paramvalidation

import "reflect"

// FieldDescriptor pairs one declared request field with its resolved
// StrongType and the rules attached to it.
type FieldDescriptor struct {
	// Name is the declared field name (lower camelCase or the json tag).
	Name string
	// Key is the snake_case parameter key derived from Name.
	Key string
	// Type is the classified declared type.
	Type StrongType
	// Field is the struct field metadata.
	Field reflect.StructField
	// Rules are evaluated in order: validate tag, Rules(), ValueRules().
	Rules []Rule
}

// skipper is implemented by rules that can stop evaluation of the rules after them.
type skipper interface {
	skipRest() bool
}

// Validate runs the rules against value in order and returns the first
// failure unchanged. It never mutates req.
func (d *FieldDescriptor) Validate(req any, name string, value any) error {
	for _, r := range d.Rules {
		if s, ok := r.(skipper); ok && s.skipRest() {
			return nil
		}
		if err := r.Check(req, name, value); err != nil {
			return err
		}
	}
	return nil
}
