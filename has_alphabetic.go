package paramvalidation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const creditCardNumberLength = 16

type hasAlphabetic struct {
	isCreditCardNumberCheck bool
}

// HasAlphabetic returns a rule that checks a string contains at least one alphabetic character.
func HasAlphabetic() Rule {
	return hasAlphabetic{}
}

// NonCreditCardNumber returns a rule that rejects strings that look like credit card numbers.
func NonCreditCardNumber() Rule {
	return hasAlphabetic{isCreditCardNumberCheck: true}
}

func (r hasAlphabetic) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if r.isCreditCardNumberCheck {
		appendDescription(ref, "Must not be a credit card number.")
		return nil
	}
	appendDescription(ref, "Must contain at least one alphabetic character.")
	return nil
}

var (
	alphabeticRegexp = regexp.MustCompile(`[^[:alpha:]]`)
	numberRegexp     = regexp.MustCompile(`\D`)
)

func (r hasAlphabetic) Check(_ any, _ string, value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	v, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}

	v = strings.TrimSpace(v)
	if v == "" || alphabeticRegexp.ReplaceAllString(v, "") != "" {
		return nil
	}
	if !r.isCreditCardNumberCheck {
		return errors.New("must contain at least one alphabetic character")
	}
	if len(numberRegexp.ReplaceAllString(v, "")) != creditCardNumberLength {
		return nil
	}
	return errors.New("must not be a credit card number")
}
