package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ErrInvalidBody is returned when the request body cannot be decoded.
var ErrInvalidBody = errors.New("invalid request body")

// maxMemory bounds multipart parsing, as in net/http's default.
const maxMemory = 32 << 20

// FromRequest builds a Chain for r, in precedence order: chi route
// parameters, the body (JSON object, url-encoded or multipart form), then
// the query string. The body is consumed.
func FromRequest(r *http.Request) (Chain, error) {
	var chain Chain

	if params := RouteParams(r); len(params) > 0 {
		chain = append(chain, params)
	}

	body, err := bodySource(r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		chain = append(chain, body)
	}

	chain = append(chain, Values(r.URL.Query()))
	return chain, nil
}

// RouteParams returns the chi URL parameters of r. The catch-all "*"
// parameter is left out.
func RouteParams(r *http.Request) Map {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	params := make(Map, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		if k == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[k] = rctx.URLParams.Values[i]
	}
	return params
}

func bodySource(r *http.Request) (Getter, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return nil, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	switch mediaType {
	case "application/json":
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		return Map(obj), nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		return Values(r.PostForm), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		return Values(r.MultipartForm.Value), nil
	}
	return nil, nil
}
