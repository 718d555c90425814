package paramvalidation

import (
	"reflect"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

var timeType = reflect.TypeOf(time.Time{})

// Schema generates an OpenAPI object schema for a request type. Properties
// are keyed by parameter key and typed from each field's StrongType; every
// rule documents itself through Describe. v is anything Discover accepts.
func Schema(v any) (*openapi3.SchemaRef, error) {
	return SchemaWith(v, nil)
}

// SchemaWith is like Schema but resolves validate tags with reg.
func SchemaWith(v any, reg *Registry) (*openapi3.SchemaRef, error) {
	d, err := Discover(v, reg)
	if err != nil {
		return nil, err
	}

	schema := openapi3.NewObjectSchema()
	for _, f := range d.Fields {
		prop, err := FieldSchema(f, schema)
		if err != nil {
			return nil, err
		}
		schema.Properties[f.Key] = prop
	}
	return openapi3.NewSchemaRef("", schema), nil
}

// FieldSchema builds the property schema of one field. Rules that mark the
// field as required record it on parent.
func FieldSchema(f *FieldDescriptor, parent *openapi3.Schema) (*openapi3.SchemaRef, error) {
	prop := openapi3.NewSchemaRef("", TypeSchema(f.Type))
	for _, rule := range f.Rules {
		if err := rule.Describe(f.Key, parent, prop); err != nil {
			return nil, err
		}
	}
	return prop, nil
}

// TypeSchema returns the bare OpenAPI schema for a StrongType.
func TypeSchema(st StrongType) *openapi3.Schema {
	var s *openapi3.Schema
	switch st.Kind {
	case KindScalar:
		switch st.Base.Kind() {
		case reflect.String:
			s = openapi3.NewStringSchema()
		case reflect.Bool:
			s = openapi3.NewBoolSchema()
		case reflect.Int64, reflect.Uint64:
			s = openapi3.NewInt64Schema()
		case reflect.Int32, reflect.Uint32:
			s = openapi3.NewInt32Schema()
		case reflect.Float32, reflect.Float64:
			s = openapi3.NewFloat64Schema()
		default:
			s = openapi3.NewIntegerSchema()
		}
	case KindArray:
		s = openapi3.NewArraySchema()
		s.Items = openapi3.NewSchemaRef("", TypeSchema(*st.Elem))
	default:
		switch {
		case st.Base == timeType:
			s = openapi3.NewDateTimeSchema()
		case st.Base.Kind() == reflect.Slice:
			s = openapi3.NewBytesSchema()
		case st.Base.Kind() == reflect.Interface:
			s = openapi3.NewSchema()
		default:
			s = openapi3.NewObjectSchema()
		}
	}
	if st.Optional {
		s.Nullable = true
	}
	return s
}
