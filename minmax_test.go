package paramvalidation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	minTests := []struct {
		min         any
		value       any
		expectError bool
	}{
		{min: 0.0, value: 1.0, expectError: false},
		{min: 0.0, value: 1, expectError: true}, // 1 is an int not a float
		{min: 0.0, value: "1", expectError: false},
		{min: 0.0, value: "-1", expectError: true},
		{min: 0.0, value: "abc", expectError: true},
		{min: 0.0, value: nil, expectError: false}, // Skips empty
		{min: 0.0, value: []int{1}, expectError: true},
		{min: 0.0, value: json.Number("1"), expectError: false},
		{min: 1, value: 2, expectError: false},
		{min: 1, value: -2, expectError: true},
		{min: 1, value: "1", expectError: false},
		{min: 1, value: "1.5", expectError: true},
		{min: uint(3), value: "2", expectError: true},
		{min: uint(3), value: "x", expectError: true},
	}
	for _, tt := range minTests {
		t.Run(fmt.Sprintf("min:%v,v:%v", tt.min, tt.value), func(t *testing.T) {
			err := Min(tt.min).Check(nil, "f", tt.value)
			if tt.expectError {
				require.NotNil(t, err)
			} else {
				require.Nil(t, err)
			}
		})
	}

	maxTests := []struct {
		max         float64
		value       any
		expectError bool
	}{
		{max: 2, value: "2", expectError: false},
		{max: 2, value: "3", expectError: true},
		{max: 2, value: "1", expectError: false},
		{max: 5.5, value: "5.6", expectError: true},
		{max: 5.5, value: "5.4", expectError: false},
		{max: 5.5, value: "5.5", expectError: false},
	}
	for _, tt := range maxTests {
		t.Run(fmt.Sprintf("max:%v,v:%v", tt.max, tt.value), func(t *testing.T) {
			err := Max(tt.max).Check(nil, "f", tt.value)
			if tt.expectError {
				require.NotNil(t, err)
			} else {
				require.Nil(t, err)
			}
		})
	}
}

func TestMinMaxMessages(t *testing.T) {
	require.EqualError(t, Min(0).Check(nil, "f", -3), "must be >= 0")
	require.EqualError(t, Max(10).Check(nil, "f", 11), "must be <= 10")
	require.EqualError(t, Min(0).Check(nil, "f", "x"), "must be an integer")
	require.EqualError(t, Min(0.5).Check(nil, "f", "x"), "must be a number")
}

func TestMinMaxDescribe(t *testing.T) {
	ref := openapi3.NewSchemaRef("", openapi3.NewIntegerSchema())
	require.NoError(t, Min(1).Describe("f", openapi3.NewObjectSchema(), ref))
	require.NoError(t, Max(9).Describe("f", openapi3.NewObjectSchema(), ref))
	require.NotNil(t, ref.Value.Min)
	require.NotNil(t, ref.Value.Max)
	require.Equal(t, 1.0, *ref.Value.Min)
	require.Equal(t, 9.0, *ref.Value.Max)

	ref = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	require.NoError(t, Min(0.5).Describe("f", openapi3.NewObjectSchema(), ref))
	require.Equal(t, "float64", ref.Value.Format)

	_, err := getFloat("x")
	require.Error(t, err)
}
