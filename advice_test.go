package paramvalidation_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	v "github.com/Gobd/paramvalidation"
	"github.com/Gobd/paramvalidation/source"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============ Test types ============

type signupRequest struct {
	v.BaseRequest
	UserName string `validate:"required"`
	UserAge  int    `validate:"min=0"`
}

type tagsRequest struct {
	v.BaseRequest
	Tags []int

	seen any
}

func (r *tagsRequest) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&r.Tags, v.ByRequest(func(req any, _ string, value any) error {
			req.(*tagsRequest).seen = value
			return nil
		}, "")),
	}
}

type badTypeRequest struct {
	v.BaseRequest
	Name     string `validate:"required"`
	Callback chan int
}

type passwordRequest struct {
	v.BaseRequest
	Password string `validate:"required"`
	Confirm  string
}

func (r *passwordRequest) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&r.Confirm, v.ByRequest(func(req any, _ string, value any) error {
			if req.(*passwordRequest).Password != value {
				return errors.New("does not match password")
			}
			return nil
		}, "must equal password")),
	}
}

type brokenRuleRequest struct {
	v.BaseRequest
	Name string
	Age  int `validate:"min=0"`
}

type pointerSlotRequest struct {
	*v.BaseRequest
	Name string
}

func (r *brokenRuleRequest) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&r.Name, v.Custom(func(any) error {
			return validation.NewInternalError(errors.New("lookup table missing"))
		}, "")),
	}
}

func newAdvisor(t *testing.T, policy v.Policy, opts ...v.Option) *v.Advisor {
	t.Helper()
	adv, err := v.New(v.Config{Policy: policy}, opts...)
	require.NoError(t, err)
	return adv
}

// ============ Tests ============

func TestAdviceScenarios(t *testing.T) {
	tests := []struct {
		name    string
		payload source.Map
		errStr  string
	}{
		{
			name:    "empty required name",
			payload: source.Map{"user_name": "", "user_age": "5"},
			errStr:  `{"userName":["required"]}`,
		},
		{
			name:    "negative age",
			payload: source.Map{"user_name": "Alice", "user_age": "-3"},
			errStr:  `{"userAge":["must be >= 0"]}`,
		},
		{
			name:    "valid",
			payload: source.Map{"user_name": "Alice", "user_age": "5"},
		},
		{
			name:    "every failing field reported",
			payload: source.Map{"user_age": "-3"},
			errStr:  `{"userName":["required"],"userAge":["must be >= 0"]}`,
		},
	}

	adv := newAdvisor(t, v.PolicyModern)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req signupRequest
			err := adv.Advice(tt.payload, &req)
			if tt.errStr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Alice", req.UserName)
				assert.Equal(t, 5, req.UserAge)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, v.ErrValidation)
			assert.Equal(t, tt.errStr, err.Error())
		})
	}
}

func TestAdviceCoercesBeforeValidating(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req signupRequest
	err := adv.Advice(source.Map{"user_name": "", "user_age": "5"}, &req)
	require.Error(t, err)

	// The passing field still holds its coerced value.
	assert.Equal(t, 5, req.UserAge)
	errs, ok := v.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"userName"}, errs.Fields())
	assert.False(t, errs.Has("userAge"))
}

func TestAdviceLeadingZeros(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req signupRequest
	require.NoError(t, adv.Advice(source.Map{"user_name": "ann", "user_age": "007"}, &req))
	assert.Equal(t, 7, req.UserAge)
}

func TestAdviceMalformedTypeAborts(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req badTypeRequest
	err := adv.Advice(source.Map{}, &req)
	require.Error(t, err)
	assert.ErrorIs(t, err, v.ErrTypeCoercion)
	assert.ErrorIs(t, err, v.ErrUnsupportedType)

	_, ok := v.AsValidationErrors(err)
	assert.False(t, ok, "no aggregated error on coercion failure")

	var tce *v.TypeCoercionError
	require.ErrorAs(t, err, &tce)
	assert.Equal(t, "callback", tce.Field)
}

func TestAdviceCoercionFailureAborts(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req signupRequest
	err := adv.Advice(source.Map{"user_name": "", "user_age": "old"}, &req)
	require.Error(t, err)
	assert.ErrorIs(t, err, v.ErrTypeCoercion)

	var tce *v.TypeCoercionError
	require.ErrorAs(t, err, &tce)
	assert.Equal(t, "userAge", tce.Field)
	assert.Equal(t, "old", tce.Value)

	_, ok := v.AsValidationErrors(err)
	assert.False(t, ok)
}

func TestAdviceArrayUnderModernPolicy(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req tagsRequest
	require.NoError(t, adv.Advice(source.Map{"tags": "1,2,3"}, &req))
	assert.Equal(t, "1,2,3", req.seen, "raw value reaches the rules unchanged")
	assert.Nil(t, req.Tags)
}

func TestAdviceArrayUnderLegacyPolicy(t *testing.T) {
	adv := newAdvisor(t, v.PolicyLegacy)

	var req tagsRequest
	require.NoError(t, adv.Advice(source.Map{"tags": "1,2,3"}, &req))
	assert.Equal(t, []int{1, 2, 3}, req.seen)
	assert.Equal(t, []int{1, 2, 3}, req.Tags)
}

func TestAdviceAssignsTypedArrays(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req tagsRequest
	require.NoError(t, adv.Advice(source.Map{"tags": []int{4, 5}}, &req))
	assert.Equal(t, []int{4, 5}, req.Tags)
}

func TestAdviceRecordsFieldList(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req signupRequest
	assert.Empty(t, req.FieldList())

	_ = adv.Advice(source.Map{}, &req)
	assert.Equal(t, []string{"userName", "userAge"}, req.FieldList())

	// A second pass leaves the same list.
	_ = adv.Advice(source.Map{}, &req)
	assert.Equal(t, []string{"userName", "userAge"}, req.FieldList())
}

func TestAdviceDeterministicOrder(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)
	payload := source.Map{"user_name": "", "user_age": "-1"}

	var first string
	for i := range 20 {
		var req signupRequest
		err := adv.Advice(payload, &req)
		require.Error(t, err)
		if i == 0 {
			first = err.Error()
			continue
		}
		assert.Equal(t, first, err.Error())
	}
}

func TestAdviceCrossFieldRule(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req passwordRequest
	err := adv.Advice(source.Map{"password": "hunter2", "confirm": "hunter3"}, &req)
	require.Error(t, err)
	assert.Equal(t, `{"confirm":["does not match password"]}`, err.Error())

	req = passwordRequest{}
	require.NoError(t, adv.Advice(source.Map{"password": "hunter2", "confirm": "hunter2"}, &req))
}

func TestAdviceInternalErrorAborts(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req brokenRuleRequest
	err := adv.Advice(source.Map{"name": "x", "age": "-1"}, &req)
	require.Error(t, err)

	var ie validation.InternalError
	assert.ErrorAs(t, err, &ie)
	_, ok := v.AsValidationErrors(err)
	assert.False(t, ok)
}

func TestAdviceRejectsNonPointer(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	err := adv.Advice(source.Map{}, nil)
	assert.ErrorIs(t, err, v.ErrNotStruct)

	var nilReq *signupRequest
	err = adv.Advice(source.Map{}, nilReq)
	assert.ErrorIs(t, err, v.ErrNotStruct)
}

func TestAdviceNilEmbeddedBaseRequest(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req pointerSlotRequest
	err := adv.Advice(source.Map{"name": "x"}, &req)
	assert.ErrorIs(t, err, v.ErrTypeCoercion)
	assert.ErrorIs(t, err, v.ErrNotStruct)
	assert.Empty(t, req.Name)
	assert.Nil(t, v.Export(&req))

	req = pointerSlotRequest{BaseRequest: &v.BaseRequest{}}
	require.NoError(t, adv.Advice(source.Map{"name": "x"}, &req))
	assert.Equal(t, "x", req.Name)
	assert.Equal(t, []string{"name"}, req.FieldList())
}

func TestAdviceReusedRequest(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req signupRequest
	require.NoError(t, adv.Advice(source.Map{"user_name": "bob", "user_age": "3"}, &req))
	assert.Equal(t, "bob", req.UserName)

	err := adv.Advice(source.Map{"user_age": "4"}, &req)
	assert.Equal(t, `{"userName":["required"]}`, err.Error())
	assert.Empty(t, req.UserName)
	assert.Equal(t, 4, req.UserAge)
	assert.Equal(t, map[string]any{"user_name": "", "user_age": 4}, v.Export(&req))
}

func TestAdviceNilSource(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req signupRequest
	err := adv.Advice(nil, &req)
	assert.Equal(t, `{"userName":["required"]}`, err.Error())
}

func TestAdviceLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adv := newAdvisor(t, v.PolicyModern, v.WithLogger(logger))

	var req signupRequest
	_ = adv.Advice(source.Map{"user_age": "-1"}, &req)

	out := buf.String()
	assert.Contains(t, out, "parameter failed validation")
	assert.Contains(t, out, `"field":"userAge"`)
	assert.Contains(t, out, "request failed validation")

	buf.Reset()
	_ = adv.Advice(source.Map{"user_age": "x"}, &req)
	assert.Contains(t, buf.String(), "parameter coercion failed")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := v.New(v.Config{Policy: "strict"})
	assert.ErrorIs(t, err, v.ErrInvalidConfig)

	assert.Panics(t, func() { v.NewMust(v.Config{}) })
	assert.Equal(t, v.PolicyLegacy, v.NewMust(v.Config{Policy: v.PolicyLegacy}).Config().Policy)
}

func TestAdviceRequest(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	r := httptest.NewRequest(http.MethodPost, "/signup?user_age=9", strings.NewReader(`{"user_name":"Alice","user_age":5}`))
	r.Header.Set("Content-Type", "application/json")

	var req signupRequest
	require.NoError(t, adv.AdviceRequest(r, &req))
	assert.Equal(t, "Alice", req.UserName)
	assert.Equal(t, 5, req.UserAge, "body wins over query")

	r = httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"user_name":`))
	r.Header.Set("Content-Type", "application/json")
	err := adv.AdviceRequest(r, &signupRequest{})
	assert.ErrorIs(t, err, source.ErrInvalidBody)
}

func TestExport(t *testing.T) {
	adv := newAdvisor(t, v.PolicyModern)

	var req signupRequest
	assert.Empty(t, v.Export(&req), "nothing listed before a pass")

	require.NoError(t, adv.Advice(source.Map{"user_name": "Alice", "user_age": "5"}, &req))
	assert.Equal(t, map[string]any{"user_name": "Alice", "user_age": 5}, v.Export(&req))
}

func TestFieldDescriptorsWithRegistry(t *testing.T) {
	reg := v.NewRegistry()
	reg.Register("required", func(_ reflect.Type, _ []string) (v.Rule, error) { return v.Required, nil })
	reg.Register("min", func(_ reflect.Type, _ []string) (v.Rule, error) { return v.Min(0), nil })

	adv := newAdvisor(t, v.PolicyModern, v.WithRegistry(reg))
	fields, err := adv.FieldDescriptors(&signupRequest{})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Len(t, fields[0].Rules, 1)
}
