package paramvalidation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// KeyIn ensures the keys of an object parameter are among values.
func KeyIn(values ...string) Rule {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	return &keyInRule{values: values, allowed: allowed}
}

type keyInRule struct {
	values  []string
	allowed map[string]bool
}

func (r *keyInRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, fmt.Sprintf("keys must be in (%s)", strings.Join(r.values, ",")))
	return nil
}

func (r *keyInRule) Check(_ any, _ string, value any) error {
	if _, isNil := validation.Indirect(value); isNil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return validation.NewInternalError(err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("must be an object")
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !r.allowed[k] {
			return fmt.Errorf("key '%s' not allowed", k)
		}
	}
	return nil
}
