// Package paramvalidation binds raw request parameters onto typed request
// structs and validates them with declarative, per-field rules.
//
// A request type embeds [BaseRequest] and declares its parameters as
// exported fields. Each field is looked up in the parameter source under
// the snake_case form of its name (userName reads user_name), coerced to the
// field's type, assigned, and checked against its rules:
//
//	type SignupRequest struct {
//	    paramvalidation.BaseRequest
//	    UserName string `validate:"required,length=3|32"`
//	    UserAge  int    `validate:"min=0"`
//	}
//
// Rules may also be registered in code by implementing [Ruler]:
//
//	func (r *SignupRequest) Rules() []*FieldRules {
//	    return []*FieldRules{
//	        Field(&r.UserName, Match(usernameRe)),
//	    }
//	}
//
// An [Advisor] runs the pass:
//
//	adv := paramvalidation.NewMust(paramvalidation.DefaultConfig())
//	var req SignupRequest
//	err := adv.AdviceRequest(r, &req)
//
// Every failing field is reported, not just the first; the error is a
// [ValidationErrors]. A value that cannot be converted to its field's type
// aborts the pass with a [*TypeCoercionError].
//
// Sub-packages:
//   - source: parameter sources built from maps, url.Values and *http.Request
//   - openapi: OpenAPI document and endpoint helpers built from request types
package paramvalidation
