package access

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type employee struct {
	id   int
	name string
}

func (e employee) Field(name string) (any, bool) {
	switch name {
	case "id":
		return e.id, true
	case "name":
		return e.name, true
	}
	return nil, false
}

func (e employee) Call(name string) (any, bool) {
	switch name {
	case "upper":
		return strings.ToUpper(e.name), true
	case "name":
		return "method shadowed by field", true
	}
	return nil, false
}

type settings map[string]string

func (s settings) Lookup(key string) (any, bool) {
	v, ok := s[strings.ToLower(key)]
	return v, ok
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		want  any
	}{
		{"field", "id", employee{10, "John"}, 10},
		{"field before method", "name", employee{10, "John"}, "John"},
		{"method", "upper", employee{10, "John"}, "JOHN"},
		{"record miss", "age", employee{10, "John"}, nil},
		{"map[string]any", "type", map[string]any{"type": "manager"}, "manager"},
		{"map[string]int", "n", map[string]int{"n": 3}, 3},
		{"map miss", "nope", map[string]any{"type": "manager"}, nil},
		{"key looker", "COLOUR", settings{"colour": "red"}, "red"},
		{"unknown shape", "len", []int{1, 2, 3}, nil},
		{"nil value", "x", nil, nil},
		{"scalar", "x", 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.field, tt.value))
		})
	}
}

func TestField(t *testing.T) {
	sel := Field[int, map[string]any]("type")

	assert.Equal(t, "manager", sel(map[string]any{"type": "manager"}, 0))
	assert.Nil(t, sel(map[string]any{}, 1))
}

func TestSelectorCallback(t *testing.T) {
	var sel Selector[int, string, string] = func(v string, k int) string {
		return strings.Repeat(v, k)
	}

	assert.Equal(t, "abab", sel("ab", 2))
}

type flag bool

func (f flag) Truthy() bool { return bool(f) }

type sized int

func (s sized) Len() int { return int(s) }

func TestTruthy(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0, false},
		{-1, true},
		{uint8(0), false},
		{0.0, false},
		{float32(0.5), true},
		{"", false},
		{"0", true},
		{"false", true},
		{[]any{}, false},
		{[]int{0}, true},
		{map[string]any{}, false},
		{map[string]string{"a": ""}, true},
		{flag(false), false},
		{flag(true), true},
		{sized(0), false},
		{sized(2), true},
		{struct{}{}, true},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, Truthy(tt.value), "Truthy(%#v)", tt.value)
	}
}
