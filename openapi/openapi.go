package openapi

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	pv "github.com/Gobd/paramvalidation"
	"github.com/getkin/kin-openapi/openapi3"
)

// Statuses documented on every endpoint that binds a request type.
const (
	StatusBadParameter     = "400"
	StatusValidationFailed = "422"
)

// Media types a request body is accepted as, matching source.FromRequest.
var bodyMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Response is a documented response. Body is a value whose type describes
// the response content; a nil Body documents a response without content.
type Response struct {
	Desc string
	Body any
}

// Endpoint describes one operation for [Get], [Post], [Put], [Patch] and
// [Delete].
type Endpoint struct {
	Summary     string
	Description string

	// Request is the type bound with paramvalidation. Fields whose key
	// appears as a path template segment become path parameters. The rest
	// are query parameters for GET, HEAD and DELETE and body properties for
	// the other methods.
	Request pv.Request

	// Response is the 200 response body.
	Response any

	// Responses adds responses by status code, replacing the generated ones.
	Responses map[string]Response
}

// DocBase returns a basic OpenAPI 3.0.3 document.
func DocBase(title, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Description: description,
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
}

// Operation builds the operation binding ep.Request at method and path.
func Operation(method, path, operationID string, ep Endpoint) (*openapi3.Operation, error) {
	op := openapi3.NewOperation()
	op.OperationID = operationID
	op.Summary = ep.Summary
	op.Description = ep.Description

	responses := map[string]Response{}
	if ep.Response != nil {
		responses["200"] = Response{Desc: "OK", Body: ep.Response}
	}

	var failure *openapi3.Schema
	if ep.Request != nil {
		d, err := pv.Discover(ep.Request, nil)
		if err != nil {
			return nil, err
		}
		if err := bindRequest(op, method, path, d); err != nil {
			return nil, err
		}
		failure = validationErrors(d)
		responses[StatusBadParameter] = Response{Desc: "Parameter could not be converted to its declared type", Body: parameterError{}}
	}
	maps.Copy(responses, ep.Responses)

	refs := make([]openapi3.NewResponsesOption, 0, len(responses)+1)
	if _, ok := responses[StatusValidationFailed]; failure != nil && !ok {
		refs = append(refs, openapi3.WithName(StatusValidationFailed,
			openapi3.NewResponse().WithDescription("Validation failed").WithJSONSchema(failure)))
	}
	for _, status := range slices.Sorted(maps.Keys(responses)) {
		r, err := newResponse(responses[status])
		if err != nil {
			return nil, fmt.Errorf("response %s: %w", status, err)
		}
		refs = append(refs, openapi3.WithName(status, r))
	}
	if len(refs) == 0 {
		op.Responses = openapi3.NewResponses()
	} else {
		op.Responses = openapi3.NewResponses(refs...)
	}
	return op, nil
}

// Add registers ep on doc at method and path.
func Add(doc *openapi3.T, method, path, operationID string, ep Endpoint) error {
	if !slices.Contains(methods, method) {
		return fmt.Errorf("openapi: unsupported method %q", method)
	}
	op, err := Operation(method, path, operationID, ep)
	if err != nil {
		return fmt.Errorf("openapi: %s %s: %w", method, path, err)
	}

	item := doc.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
	}
	item.SetOperation(method, op)
	doc.Paths.Set(path, item)
	return nil
}

var methods = []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// Get registers a GET endpoint on doc. It panics when Add fails.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) {
	must(Add(doc, http.MethodGet, path, operationID, ep))
}

// Post registers a POST endpoint on doc. It panics when Add fails.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) {
	must(Add(doc, http.MethodPost, path, operationID, ep))
}

// Put registers a PUT endpoint on doc. It panics when Add fails.
func Put(doc *openapi3.T, path, operationID string, ep Endpoint) {
	must(Add(doc, http.MethodPut, path, operationID, ep))
}

// Patch registers a PATCH endpoint on doc. It panics when Add fails.
func Patch(doc *openapi3.T, path, operationID string, ep Endpoint) {
	must(Add(doc, http.MethodPatch, path, operationID, ep))
}

// Delete registers a DELETE endpoint on doc. It panics when Add fails.
func Delete(doc *openapi3.T, path, operationID string, ep Endpoint) {
	must(Add(doc, http.MethodDelete, path, operationID, ep))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// bindRequest spreads the discovered fields over path parameters, query
// parameters and the request body.
func bindRequest(op *openapi3.Operation, method, path string, d *pv.Discovery) error {
	inPath := pathKeys(path)
	inQuery := method == http.MethodGet || method == http.MethodHead || method == http.MethodDelete
	body := openapi3.NewObjectSchema()

	for _, f := range d.Fields {
		switch {
		case inPath[f.Key]:
			p, err := parameter(openapi3.NewPathParameter(f.Key), f)
			if err != nil {
				return err
			}
			op.AddParameter(p)
		case inQuery:
			p, err := parameter(openapi3.NewQueryParameter(f.Key), f)
			if err != nil {
				return err
			}
			op.AddParameter(p)
		default:
			prop, err := pv.FieldSchema(f, body)
			if err != nil {
				return err
			}
			body.Properties[f.Key] = prop
		}
	}

	if len(body.Properties) > 0 {
		content := make(openapi3.Content, len(bodyMediaTypes))
		for _, mt := range bodyMediaTypes {
			content[mt] = openapi3.NewMediaType().WithSchema(body)
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(len(body.Required) > 0).WithContent(content),
		}
	}
	return nil
}

// parameter fills p from the field's schema. The field is required when one
// of its rules records it as such.
func parameter(p *openapi3.Parameter, f *pv.FieldDescriptor) (*openapi3.Parameter, error) {
	scratch := openapi3.NewObjectSchema()
	prop, err := pv.FieldSchema(f, scratch)
	if err != nil {
		return nil, err
	}
	p.Schema = prop
	p.Description = prop.Value.Description
	p.Required = p.Required || slices.Contains(scratch.Required, f.Key)
	return p, nil
}

// pathKeys returns the names of the {param} segments of a route pattern.
func pathKeys(path string) map[string]bool {
	keys := map[string]bool{}
	for _, seg := range strings.Split(path, "/") {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}")
		// chi allows {name:regexp}
		name, _, _ = strings.Cut(name, ":")
		keys[name] = true
	}
	return keys
}

// validationErrors describes the 422 body: the failure messages of each
// declared field, keyed by field name.
func validationErrors(d *pv.Discovery) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Description = "Failure messages keyed by field name."
	messages := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	for _, name := range d.Names {
		s.WithProperty(name, messages)
	}
	return s
}

// parameterError is the 400 body written when a parameter cannot be coerced.
type parameterError struct {
	Error string `json:"error"`
}

func newResponse(r Response) (*openapi3.Response, error) {
	if r.Desc == "" {
		return nil, errors.New("missing description")
	}
	resp := openapi3.NewResponse().WithDescription(r.Desc)
	if r.Body == nil {
		return resp, nil
	}
	schema, err := NewSchemaRefForValue(r.Body)
	if err != nil {
		return nil, err
	}
	return resp.WithJSONSchemaRef(schema), nil
}
