package paramvalidation

import (
	"reflect"
	"slices"
)

// Request is implemented by request types through an embedded BaseRequest.
type Request interface {
	// SetFieldList replaces the list of discovered field names.
	SetFieldList(names []string)
	// FieldList returns the field names recorded by the last validation pass.
	FieldList() []string
}

// BaseRequest carries the bookkeeping list of discovered field names.
// Embed it by value in every request type:
//
//	type SignupRequest struct {
//	    paramvalidation.BaseRequest
//	    UserName string
//	    UserAge  int
//	}
//
// The embedded field is never treated as a parameter.
type BaseRequest struct {
	fieldList []string
}

// SetFieldList implements Request. names is copied.
func (b *BaseRequest) SetFieldList(names []string) {
	b.fieldList = slices.Clone(names)
}

// FieldList implements Request.
func (b *BaseRequest) FieldList() []string {
	return slices.Clone(b.fieldList)
}

var baseRequestType = reflect.TypeOf(BaseRequest{})

// isReserved reports whether sf is the embedded bookkeeping slot.
func isReserved(sf reflect.StructField) bool {
	if !sf.Anonymous {
		return false
	}
	t := sf.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t == baseRequestType
}

// nilSlot reports whether rv embeds BaseRequest through a nil pointer.
func nilSlot(rv reflect.Value) bool {
	t := rv.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if isReserved(sf) && sf.Type.Kind() == reflect.Ptr && rv.Field(i).IsNil() {
			return true
		}
	}
	return false
}

// Export returns the values of the fields recorded in req's field list,
// keyed by parameter key. Fields not in the list are left out, so a request
// that was never validated exports nothing.
func Export(req Request) map[string]any {
	rv := reflect.Indirect(reflect.ValueOf(req))
	if rv.Kind() != reflect.Struct || nilSlot(rv) {
		return nil
	}

	listed := req.FieldList()
	allowed := make(map[string]bool, len(listed))
	for _, name := range listed {
		allowed[name] = true
	}

	out := make(map[string]any, len(listed))
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() || isReserved(sf) {
			continue
		}
		name := declaredName(sf)
		if allowed[name] {
			out[ExternalKey(name)] = rv.Field(i).Interface()
		}
	}
	return out
}
