package source_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobd/paramvalidation/source"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve routes r through a chi router mounted at pattern and returns the
// source built inside the handler.
func serve(t *testing.T, method, pattern string, r *http.Request) (source.Chain, error) {
	t.Helper()
	var (
		got source.Chain
		err error
	)
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, func(_ http.ResponseWriter, r *http.Request) {
		got, err = source.FromRequest(r)
	})
	router.ServeHTTP(httptest.NewRecorder(), r)
	return got, err
}

func TestFromRequestJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/users/7?user_id=9&page=2&name=query",
		strings.NewReader(`{"name":"ann","age":5,"tags":["a","b"],"user_id":"body"}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	src, err := serve(t, http.MethodPost, "/users/{user_id}", r)
	require.NoError(t, err)

	assert.Equal(t, "7", src.Get("user_id"), "route params win")
	assert.Equal(t, "ann", src.Get("name"), "body wins over query")
	assert.Equal(t, json.Number("5"), src.Get("age"))
	assert.Equal(t, []any{"a", "b"}, src.Get("tags"))
	assert.Equal(t, "2", src.Get("page"))
	assert.Nil(t, src.Get("missing"))
}

func TestFromRequestForm(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/signup?plan=free", strings.NewReader("user_name=ann&tag=a&tag=b"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	src, err := source.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "ann", src.Get("user_name"))
	assert.Equal(t, []string{"a", "b"}, src.Get("tag"))
	assert.Equal(t, "free", src.Get("plan"))
}

func TestFromRequestMultipart(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("user_name", "ann"))
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/signup", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())

	src, err := source.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "ann", src.Get("user_name"))
}

func TestFromRequestQueryOnly(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/items?page_size=10&sort=name", nil)

	src, err := source.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "10", src.Get("page_size"))
	assert.Equal(t, "name", src.Get("sort"))
}

func TestFromRequestIgnoresOtherBodies(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/upload?name=q", strings.NewReader("raw bytes"))
	r.Header.Set("Content-Type", "application/octet-stream")

	src, err := source.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "q", src.Get("name"))

	r = httptest.NewRequest(http.MethodPost, "/upload?name=q", strings.NewReader(""))
	r.Header.Set("Content-Type", "application/json")
	_, err = source.FromRequest(r)
	assert.NoError(t, err, "empty JSON body")
}

func TestFromRequestInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		ct   string
		body string
	}{
		{name: "truncated json", ct: "application/json", body: `{"name":`},
		{name: "json array", ct: "application/json", body: `[1,2]`},
		{name: "bad content type", ct: "application/json; =", body: `{}`},
		{name: "multipart without boundary", ct: "multipart/form-data", body: "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", tt.ct)
			_, err := source.FromRequest(r)
			assert.ErrorIs(t, err, source.ErrInvalidBody)
		})
	}
}

func TestRouteParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/files/7/a/b.txt", nil)

	var params source.Map
	router := chi.NewRouter()
	router.Get("/files/{file_id}/*", func(_ http.ResponseWriter, r *http.Request) {
		params = source.RouteParams(r)
	})
	router.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, source.Map{"file_id": "7"}, params)
	assert.Nil(t, source.RouteParams(httptest.NewRequest(http.MethodGet, "/", nil)))
}
