package paramvalidation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RuleFactory builds a rule for a field of type t from the parameters of
// a validate tag entry ("length=3|50" yields params ["3", "50"]).
type RuleFactory func(t reflect.Type, params []string) (Rule, error)

// Registry maps validate tag names to rule factories. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]RuleFactory
}

// builtin is used when no registry is configured. It is never modified.
var builtin = DefaultRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]RuleFactory{}}
}

// DefaultRegistry returns a new registry holding the built-in rules:
//
//	required, nil, empty, notnil
//	min=N, max=N, length=LO|HI, in=A|B|C, match=REGEXP, date=LAYOUT
//	alpha, decimals=N
//	email, url, uuid, alphanumeric, digit, ip, hexadecimal, base64, country_code2
//
// Callers may Register additional rules on the returned registry.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("required", fixed(Required))
	r.Register("nil", fixed(Nil))
	r.Register("empty", fixed(Empty))
	r.Register("notnil", fixed(NotNil))
	r.Register("alpha", fixed(HasAlphabetic()))
	r.Register("min", thresholdFactory(Min))
	r.Register("max", thresholdFactory(Max))
	r.Register("length", lengthFactory)
	r.Register("in", inFactory)
	r.Register("match", matchFactory)
	r.Register("date", dateFactory)
	r.Register("decimals", decimalsFactory)

	formats := map[string]validation.Rule{
		"email":         is.EmailFormat,
		"url":           is.URL,
		"uuid":          is.UUID,
		"alphanumeric":  is.Alphanumeric,
		"digit":         is.Digit,
		"ip":            is.IP,
		"hexadecimal":   is.Hexadecimal,
		"base64":        is.Base64,
		"country_code2": is.CountryCode2,
	}
	for name, rule := range formats {
		r.Register(name, fixed(Format(name, rule)))
	}
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f RuleFactory) {
	if name == "" || f == nil {
		panic("paramvalidation: Register requires a name and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Lookup returns the factory registered for name.
func (r *Registry) Lookup(name string) (RuleFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse builds the rules described by a validate tag for a field of type t.
// Entries are comma separated; parameters follow "=" and are separated by
// "|". An empty tag or "-" yields no rules.
func (r *Registry) Parse(t reflect.Type, tag string) ([]Rule, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "-" {
		return nil, nil
	}

	var rules []Rule
	for _, entry := range strings.Split(tag, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, arg, hasArg := strings.Cut(entry, "=")
		f, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
		}
		var params []string
		if hasArg {
			params = strings.Split(arg, "|")
		}
		rule, err := f(t, params)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func fixed(rule Rule) RuleFactory {
	return func(_ reflect.Type, params []string) (Rule, error) {
		if len(params) > 0 {
			return nil, fmt.Errorf("%w: takes no parameters", ErrInvalidRuleParam)
		}
		return rule, nil
	}
}

func wantParams(params []string, n int) error {
	if len(params) != n {
		return fmt.Errorf("%w: want %d parameter(s), got %d", ErrInvalidRuleParam, n, len(params))
	}
	return nil
}

// scalarOf returns the non-optional scalar type behind t, if any.
func scalarOf(t reflect.Type) (StrongType, bool) {
	st, err := Classify(t)
	if err != nil || st.Kind != KindScalar {
		return StrongType{}, false
	}
	return st.required(), true
}

// paramValue converts a tag parameter to the scalar type of the field so
// comparisons inside ozzo rules see matching kinds.
func paramValue(t reflect.Type, param string) (any, error) {
	st, ok := scalarOf(t)
	if !ok || st.Base.Kind() == reflect.String || st.Base.Kind() == reflect.Bool {
		return param, nil
	}
	v, err := Coerce(st, param)
	if err != nil || v == nil {
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidRuleParam, param, t)
	}
	return v, nil
}

func thresholdFactory(build func(threshold any) Rule) RuleFactory {
	return func(t reflect.Type, params []string) (Rule, error) {
		if err := wantParams(params, 1); err != nil {
			return nil, err
		}
		st, ok := scalarOf(t)
		if !ok || st.Base.Kind() == reflect.String {
			f, err := strconv.ParseFloat(params[0], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidRuleParam, params[0])
			}
			return build(f), nil
		}
		if st.Base.Kind() == reflect.Bool {
			return nil, fmt.Errorf("%w: threshold on bool field", ErrInvalidRuleParam)
		}
		v, err := paramValue(t, params[0])
		if err != nil {
			return nil, err
		}
		return build(v), nil
	}
}

func lengthFactory(_ reflect.Type, params []string) (Rule, error) {
	if err := wantParams(params, 2); err != nil {
		return nil, err
	}
	lo, err := strconv.Atoi(params[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRuleParam, params[0])
	}
	hi, err := strconv.Atoi(params[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRuleParam, params[1])
	}
	return Length(lo, hi), nil
}

func inFactory(t reflect.Type, params []string) (Rule, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: in needs at least one value", ErrInvalidRuleParam)
	}
	values := make([]any, len(params))
	for i, p := range params {
		v, err := paramValue(t, p)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return In(values...), nil
}

// matchFactory rejoins the parameters so "|" alternation survives the split.
func matchFactory(_ reflect.Type, params []string) (Rule, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: match needs a pattern", ErrInvalidRuleParam)
	}
	re, err := regexp.Compile(strings.Join(params, "|"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleParam, err)
	}
	return Match(re), nil
}

func dateFactory(_ reflect.Type, params []string) (Rule, error) {
	if err := wantParams(params, 1); err != nil {
		return nil, err
	}
	return Date(params[0]), nil
}

func decimalsFactory(_ reflect.Type, params []string) (Rule, error) {
	if err := wantParams(params, 1); err != nil {
		return nil, err
	}
	n, err := strconv.ParseUint(params[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRuleParam, params[0])
	}
	return NewStringRuleDecimalMax(uint(n)), nil
}
