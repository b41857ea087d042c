package netlist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepr(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "None"},
		{true, "True"},
		{false, "False"},
		{json.Number("3.50"), "3.5"},
		{json.Number("42"), "42"},
		{json.Number("-0"), "0"},
		{json.Number("123456789012345678901234567890"), "123456789012345678901234567890"},
		{json.Number("1e5"), "100000.0"},
		{json.Number("1E2"), "100.0"},
		{json.Number("-0.0"), "-0.0"},
		{json.Number("0.0001"), "0.0001"},
		{json.Number("0.00001"), "1e-05"},
		{json.Number("1e15"), "1000000000000000.0"},
		{json.Number("1e16"), "1e+16"},
		{json.Number("1.5e300"), "1.5e+300"},
		{json.Number("1e999"), "inf"},
		{json.Number("-1e999"), "-inf"},
		{2.5, "2.5"},
		{3.0, "3.0"},
		{"V1", "'V1'"},
		{"it's", `"it's"`},
		{`a'b"c`, `'a\'b"c'`},
		{[]any{"a", json.Number("1"), nil}, "['a', 1, None]"},
		{map[string]any{"b": true, "a": "x"}, "{'a': 'x', 'b': True}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, repr(tt.in))
	}
}

func TestStr(t *testing.T) {
	assert.Equal(t, "N1", str("N1"))
	assert.Equal(t, "None", str(nil))
	assert.Equal(t, "['x']", str([]any{"x"}))
}

func TestEqual(t *testing.T) {
	assert.True(t, equal("N1", "N1"))
	assert.False(t, equal("N1", "N2"))
	assert.True(t, equal(json.Number("1"), json.Number("1.0")))
	assert.True(t, equal(json.Number("2"), 2.0))
	assert.False(t, equal(json.Number("1"), "1"))
	assert.True(t, equal(nil, nil))
	assert.False(t, equal(nil, false))
	assert.True(t, equal(true, json.Number("1")))
	assert.True(t, equal(json.Number("0.0"), false))
	assert.True(t, equal(false, false))
	assert.False(t, equal(true, false))
	assert.False(t, equal(true, json.Number("2")))
	assert.False(t, equal(true, "True"))
	assert.True(t, equal([]any{"a", json.Number("1")}, []any{"a", json.Number("1")}))
	assert.True(t, equal(map[string]any{"k": "v"}, map[string]any{"k": "v"}))
	assert.False(t, equal(map[string]any{"k": "v"}, map[string]any{"k": "w"}))
}
