package openapi

import (
	"reflect"

	pv "github.com/Gobd/paramvalidation"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

var requestType = reflect.TypeOf((*pv.Request)(nil)).Elem()

// NewSchemaRefForValue generates an OpenAPI schema for value. Request types
// (those embedding [paramvalidation.BaseRequest]) are described with their
// parameter keys and rules; anything else falls back to openapi3gen.
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	if isRequest(value) {
		return pv.Schema(value)
	}
	return openapi3gen.NewSchemaRefForValue(value, nil)
}

func isRequest(value any) bool {
	if value == nil {
		return false
	}
	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(requestType)
}

// Parameters describes every field of a request type as a query parameter
// keyed by parameter key, in declaration order.
func Parameters(v any) (openapi3.Parameters, error) {
	d, err := pv.Discover(v, nil)
	if err != nil {
		return nil, err
	}
	params := make(openapi3.Parameters, 0, len(d.Fields))
	for _, f := range d.Fields {
		p, err := parameter(openapi3.NewQueryParameter(f.Key), f)
		if err != nil {
			return nil, err
		}
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	return params, nil
}
