// Command example serves a chi router whose handlers bind and validate
// their parameters with paramvalidation, and publishes the generated
// OpenAPI document.
//
// Run:
//
//	go run ./_example
//
// Then try:
//
//	curl 'http://localhost:8080/users/42/orders?page_size=500'
//	curl -d '{"customer_name":"ann","item_count":"3","total":9.5}' http://localhost:8080/orders
//	curl http://localhost:8080/openapi.json
package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	v "github.com/Gobd/paramvalidation"
	"github.com/Gobd/paramvalidation/openapi"
	"github.com/Gobd/paramvalidation/source"
	"github.com/go-chi/chi/v5"
)

// CreateOrderRequest is bound from a JSON or form body.
type CreateOrderRequest struct {
	v.BaseRequest
	CustomerName string  `validate:"required,length=1|200"`
	ItemCount    int     `validate:"required,min=1"`
	Total        float64 `validate:"required,min=0.01"`
	Coupon       *string `validate:"match=^[A-Z0-9]{6}$"`
}

// ListOrdersRequest is bound from the route and the query string.
type ListOrdersRequest struct {
	v.BaseRequest
	UserID   int64 `validate:"required,min=1"`
	PageSize int   `validate:"min=1,max=100"`
	Status   []string
}

func (r *ListOrdersRequest) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&r.Status, v.Each(v.In("open", "shipped", "closed"))),
	}
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := v.LoadConfig()
	if err != nil {
		logger.Error("loading config", slog.Any("error", err))
		os.Exit(1)
	}
	adv := v.NewMust(cfg, v.WithLogger(logger))

	doc := openapi.DocBase("Example API", "Demonstrates paramvalidation", "0.1.0")
	openapi.Post(doc, "/orders", "createOrder", openapi.Endpoint{
		Summary:  "Create an order",
		Request:  &CreateOrderRequest{},
		Response: map[string]any{},
	})
	openapi.Get(doc, "/users/{user_id}/orders", "listOrders", openapi.Endpoint{
		Summary:  "List a user's orders",
		Request:  &ListOrdersRequest{},
		Response: []map[string]any{},
	})

	r := chi.NewRouter()
	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, doc)
	})
	r.Post("/orders", func(w http.ResponseWriter, r *http.Request) {
		var req CreateOrderRequest
		if !bind(w, r, adv, &req) {
			return
		}
		writeJSON(w, http.StatusCreated, v.Export(&req))
	})
	r.Get("/users/{user_id}/orders", func(w http.ResponseWriter, r *http.Request) {
		var req ListOrdersRequest
		if !bind(w, r, adv, &req) {
			return
		}
		writeJSON(w, http.StatusOK, v.Export(&req))
	})

	logger.Info("listening", slog.String("addr", ":8080"))
	if err := http.ListenAndServe(":8080", r); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

// bind writes the error response and returns false when req is invalid.
func bind(w http.ResponseWriter, r *http.Request, adv *v.Advisor, req v.Request) bool {
	err := adv.AdviceRequest(r, req)
	if err == nil {
		return true
	}
	if errs, ok := v.AsValidationErrors(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errs)
		return false
	}
	if errors.Is(err, v.ErrTypeCoercion) || errors.Is(err, source.ErrInvalidBody) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
