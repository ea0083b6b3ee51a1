package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero int", 0, false},
		{"zero float", 0.0, false},
		{"nonzero", 1, true},
		{"negative", -1.5, true},
		{"empty string", "", false},
		{"string", "a", true},
		{"string zero", "0", true},
		{"empty array", []any{}, false},
		{"array", []any{0}, true},
		{"empty object", map[string]any{}, false},
		{"object", map[string]any{"a": 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy(tt.value))
			assert.Equal(t, !tt.want, Falsy(tt.value))
		})
	}
}

func TestToNumeric(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   any
		wantOK bool
	}{
		{"int", 42, 42, true},
		{"integral float collapses", 42.0, 42, true},
		{"fractional float", 1.5, 1.5, true},
		{"int string", "42", 42, true},
		{"float string", "1.5", 1.5, true},
		{"integral float string", "2.0", 2, true},
		{"padded string", " 7 ", 7, true},
		{"bool true", true, 1, true},
		{"bool false", false, 0, true},
		{"non numeric string", "abc", nil, false},
		{"nil", nil, nil, false},
		{"array", []any{1}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToNumeric(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat("3.25")
	assert.True(t, ok)
	assert.Equal(t, 3.25, f)

	_, ok = ToFloat(true)
	assert.False(t, ok, "booleans require explicit coercion")

	_, ok = ToFloat(nil)
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"string passthrough", "abc", "abc"},
		{"integral float", 1.0, "1"},
		{"int", 7, "7"},
		{"fractional", 1.5, "1.5"},
		{"array", []any{1, 2.0, "x"}, "1,2,x"},
		{"array with null", []any{1, nil, 2}, "1,,2"},
		{"nested array", []any{[]any{1, 2}, 3}, "1,2,3"},
		{"object", map[string]any{"a": 1}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.value))
		})
	}
}

func TestSoftEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"number and string", 1, "1", true},
		{"float and string", 1.0, "1", true},
		{"string mismatch", 1, "2", false},
		{"bool and number", true, 1, true},
		{"bool and zero", false, 0, true},
		{"bool and string compares representations", true, "yes", false},
		{"bool and its string form", true, "true", true},
		{"int and float", 1, 1.0, true},
		{"nil and nil", nil, nil, true},
		{"nil and zero", nil, 0, false},
		{"arrays", []any{1, 2}, []any{1.0, 2.0}, true},
		{"arrays mismatched", []any{1, 2}, []any{1, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SoftEquals(tt.a, tt.b))
		})
	}
}

func TestHardEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same number different type", 1, 1.0, true},
		{"number and string", 1, "1", false},
		{"same strings", "a", "a", true},
		{"bool and number", true, 1, false},
		{"nil and nil", nil, nil, true},
		{"nil and value", nil, false, false},
		{"equal arrays", []any{1, 2.0}, []any{1.0, 2}, true},
		{"equal objects", map[string]any{"a": 1}, map[string]any{"a": 1.0}, true},
		{"object key mismatch", map[string]any{"a": 1}, map[string]any{"b": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HardEquals(tt.a, tt.b))
		})
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"numbers", 1, 2, true},
		{"reversed", 2, 1, false},
		{"equal", 2, 2, false},
		{"number and numeric string", 1, "2", true},
		{"number and garbage", 1, "abc", false},
		{"strings lexicographic", "apple", "banana", true},
		{"strings reversed", "banana", "apple", false},
		{"unordered types", []any{}, map[string]any{}, false},
		{"nil operand", nil, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(tt.a, tt.b))
		})
	}
}

func TestLessOrEqual(t *testing.T) {
	assert.True(t, LessOrEqual(1, 1))
	assert.True(t, LessOrEqual(1, 2))
	assert.False(t, LessOrEqual(2, 1))
	assert.True(t, LessOrEqual("1", 1), "loose equality covers the bound")
}
