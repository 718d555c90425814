package paramvalidation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation matches any ValidationErrors.
	ErrValidation = errors.New("validation failed")

	// ErrTypeCoercion matches any *TypeCoercionError.
	ErrTypeCoercion = errors.New("type coercion failed")

	// ErrUnsupportedType is the cause when a declared field type cannot be classified.
	ErrUnsupportedType = errors.New("unsupported field type")

	// ErrNotStruct is the cause when discovery is given something other than a struct.
	ErrNotStruct = errors.New("request must be a struct")

	// ErrKeyCollision is the cause when two declared fields share a parameter key.
	ErrKeyCollision = errors.New("parameter key collision")

	// ErrUnknownRule is returned when a validate tag names an unregistered rule.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrInvalidRuleParam is returned when a validate tag carries unusable parameters.
	ErrInvalidRuleParam = errors.New("invalid rule parameter")
)

// TypeCoercionError reports that a raw value could not be converted to a
// field's declared type, or that the declared type itself is unusable.
// It aborts the whole validation pass.
type TypeCoercionError struct {
	// Field is the declared field name, when known.
	Field string
	// Type is the declared Go type.
	Type string
	// Value is the raw value that failed to convert (may be nil).
	Value any
	// Cause is the underlying error, if any.
	Cause error
}

func (e *TypeCoercionError) Error() string {
	msg := "type coercion error"
	if e.Field != "" {
		msg += " on field " + e.Field
	}
	if e.Value != nil {
		msg += fmt.Sprintf(": cannot convert %#v", e.Value)
		if e.Type != "" {
			msg += " to " + e.Type
		}
	} else if e.Type != "" {
		msg += " (" + e.Type + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *TypeCoercionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrTypeCoercion.
func (e *TypeCoercionError) Is(target error) bool {
	return target == ErrTypeCoercion
}

// FieldErrors holds the failure messages of one field, in rule order.
type FieldErrors struct {
	Field    string
	Messages []string
}

// ValidationErrors is the aggregated outcome of a failed validation pass:
// one entry per failed field, in discovery order. It renders as a JSON
// object mapping field name to its list of messages.
type ValidationErrors []FieldErrors

func (e ValidationErrors) Error() string {
	b, err := e.MarshalJSON()
	if err != nil {
		return ErrValidation.Error()
	}
	return string(b)
}

// MarshalJSON renders the errors as a JSON object, keeping field order.
func (e ValidationErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fe := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fe.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		msgs := fe.Messages
		if msgs == nil {
			msgs = []string{}
		}
		m, err := json.Marshal(msgs)
		if err != nil {
			return nil, err
		}
		buf.Write(m)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Is reports whether target is ErrValidation.
func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add appends msg to field's messages, creating the entry if needed.
func (e *ValidationErrors) Add(field, msg string) {
	for i := range *e {
		if (*e)[i].Field == field {
			(*e)[i].Messages = append((*e)[i].Messages, msg)
			return
		}
	}
	*e = append(*e, FieldErrors{Field: field, Messages: []string{msg}})
}

// Get returns the messages recorded for field.
func (e ValidationErrors) Get(field string) []string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Messages
		}
	}
	return nil
}

// Has reports whether field failed.
func (e ValidationErrors) Has(field string) bool {
	return len(e.Get(field)) > 0
}

// Fields returns the failed field names in discovery order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, len(e))
	for i, fe := range e {
		fields[i] = fe.Field
	}
	return fields
}

// Map returns the errors as a plain map. Ordering is lost.
func (e ValidationErrors) Map() map[string][]string {
	m := make(map[string][]string, len(e))
	for _, fe := range e {
		m[fe.Field] = fe.Messages
	}
	return m
}

// Ozzo converts the errors to ozzo-validation's map form for code that
// already handles validation.Errors.
func (e ValidationErrors) Ozzo() validation.Errors {
	out := make(validation.Errors, len(e))
	for _, fe := range e {
		out[fe.Field] = errors.New(strings.Join(fe.Messages, "; "))
	}
	return out
}

// AsValidationErrors extracts ValidationErrors from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func isInternal(err error) bool {
	var ie validation.InternalError
	return errors.As(err, &ie)
}
