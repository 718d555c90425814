// Package openapi builds OpenAPI 3 documents from request types validated
// by [paramvalidation]. Request fields are documented under their
// snake_case parameter keys, and every rule describes itself on the
// generated schema.
//
// Use [DocBase] to create a document and register endpoints with [Get],
// [Post], [Put], [Patch] or [Delete], or with [Add] to get an error instead
// of a panic:
//
//	doc := openapi.DocBase("my-api", "My API", "1.0")
//	openapi.Post(doc, "/signup", "signup", openapi.Endpoint{
//	    Request:  &SignupRequest{},
//	    Response: Account{},
//	})
//
// Fields named by a {key} segment of the path become path parameters. The
// remaining fields are query parameters for GET, HEAD and DELETE and a
// JSON or form body otherwise, the same places source.FromRequest reads
// them from. An endpoint with a request documents a 400 response for
// values that cannot be converted and a 422 response carrying the
// [paramvalidation.ValidationErrors] body keyed by field name.
package openapi
