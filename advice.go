package paramvalidation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/Gobd/paramvalidation/source"
)

// Option configures an Advisor.
type Option func(*Advisor)

// WithRegistry sets the registry used to resolve validate tags.
func WithRegistry(r *Registry) Option {
	return func(a *Advisor) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithLogger sets the logger. Field failures are logged at debug level,
// aborted passes at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(a *Advisor) {
		if l != nil {
			a.logger = l
		}
	}
}

// Advisor binds and validates request parameters.
type Advisor struct {
	cfg      Config
	registry *Registry
	logger   *slog.Logger
}

// New returns an Advisor for cfg.
func New(cfg Config, opts ...Option) (*Advisor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Advisor{
		cfg:      cfg,
		registry: builtin,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewMust is like [New] but panics on error.
func NewMust(cfg Config, opts ...Option) *Advisor {
	a, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Config returns the configuration the Advisor was built with.
func (a *Advisor) Config() Config {
	return a.cfg
}

// Advice binds src onto req and validates every field.
//
// For each declared field, in declaration order, the raw value is read from
// src under the field's snake_case key, coerced according to the policy,
// assigned onto req when its type allows, and checked against the field's
// rules. A failing field does not stop the pass: all failures are returned
// together as ValidationErrors. A *TypeCoercionError aborts the pass.
//
// Every declared field is reset before assignment, so a parameter absent
// from src leaves its field at the zero value even when req is reused.
//
// req must be a non-nil pointer; its field list is replaced with the
// discovered field names. A BaseRequest embedded by pointer must not be nil.
func (a *Advisor) Advice(src Source, req Request) error {
	return a.AdviceCtx(context.Background(), src, req)
}

// AdviceCtx is like Advice but passes ctx to ContextRuler.Rules and the logger.
func (a *Advisor) AdviceCtx(ctx context.Context, src Source, req Request) error {
	rv := reflect.ValueOf(req)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &TypeCoercionError{Type: fmt.Sprintf("%T", req), Cause: ErrNotStruct}
	}
	if nilSlot(rv.Elem()) {
		return &TypeCoercionError{Type: fmt.Sprintf("%T", req), Cause: fmt.Errorf("%w: embedded *BaseRequest is nil", ErrNotStruct)}
	}

	d, err := discover(ctx, req, a.registry)
	if err != nil {
		a.logger.WarnContext(ctx, "request discovery failed", slog.String("request", rv.Type().String()), slog.Any("error", err))
		return err
	}
	req.SetFieldList(d.Names)

	if src == nil {
		src = emptySource{}
	}

	target := rv.Elem()
	var errs ValidationErrors
	for _, f := range d.Fields {
		value := src.Get(f.Key)
		if a.coerces(f.Type) {
			value, err = Coerce(f.Type, value)
			if err != nil {
				var tce *TypeCoercionError
				if errors.As(err, &tce) && tce.Field == "" {
					tce.Field = f.Name
				}
				a.logger.WarnContext(ctx, "parameter coercion failed",
					slog.String("field", f.Name),
					slog.String("key", f.Key),
					slog.Any("error", err),
				)
				return err
			}
		}

		assign(target.FieldByIndex(f.Field.Index), value)

		if err := f.Validate(req, f.Name, value); err != nil {
			if isInternal(err) {
				return fmt.Errorf("paramvalidation: field %s: %w", f.Name, err)
			}
			a.logger.DebugContext(ctx, "parameter failed validation",
				slog.String("field", f.Name),
				slog.String("key", f.Key),
				slog.String("error", err.Error()),
			)
			errs.Add(f.Name, err.Error())
		}
	}

	if len(errs) > 0 {
		a.logger.DebugContext(ctx, "request failed validation",
			slog.String("request", rv.Type().String()),
			slog.Any("fields", errs.Fields()),
		)
		return errs
	}
	return nil
}

// AdviceRequest is Advice with a source built from r: chi route
// parameters, then the body (JSON object or form), then the query string.
func (a *Advisor) AdviceRequest(r *http.Request, req Request) error {
	src, err := source.FromRequest(r)
	if err != nil {
		return err
	}
	return a.AdviceCtx(r.Context(), src, req)
}

// FieldDescriptors discovers v with the Advisor's registry.
func (a *Advisor) FieldDescriptors(v any) ([]*FieldDescriptor, error) {
	d, err := Discover(v, a.registry)
	if err != nil {
		return nil, err
	}
	return d.Fields, nil
}

// coerces reports whether the policy applies coercion to a field of type st.
func (a *Advisor) coerces(st StrongType) bool {
	if a.cfg.Policy == PolicyLegacy {
		return true
	}
	return st.IsBuiltin() && !st.IsArray()
}

// assign resets dst, then stores value in it when its type allows. Absent
// values and values that cannot be assigned (raw strings for uncoerced
// array fields, JSON objects for struct fields) leave dst at its zero value.
func assign(dst reflect.Value, value any) {
	if !dst.CanSet() {
		return
	}
	dst.SetZero()
	if value == nil {
		return
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(dst.Type()) {
		dst.Set(v)
	}
}
