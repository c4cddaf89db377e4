// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewAttributes(t *testing.T) {
	t.Parallel()

	a := NewAttributes(Attr("b", 1), Attr("a", 2), Attr("b", 3))

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"b", "a"}, a.Keys())
	assert.Equal(t, 3, a.Value("b"))
	assert.True(t, a.Has("a"))
	assert.False(t, a.Has("c"))
	assert.Nil(t, a.Value("c"))

	var zero Attributes
	assert.Equal(t, 0, zero.Len())
	assert.Empty(t, zero.Keys())
	assert.False(t, zero.Has("a"))
}

func TestAttributesOfSortsKeys(t *testing.T) {
	t.Parallel()

	a := AttributesOf(map[string]any{"z": 1, "a": 2, "m": 3})
	assert.Equal(t, []string{"a", "m", "z"}, a.Keys())
	assert.Equal(t, map[string]any{"z": 1, "a": 2, "m": 3}, a.ToMap())
}

func TestAttributesMerge(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		base     Attributes
		other    Attributes
		wantKeys []string
		want     map[string]any
	}{
		{
			name:     "empty base",
			base:     Attributes{},
			other:    NewAttributes(Attr("a", 1)),
			wantKeys: []string{"a"},
			want:     map[string]any{"a": 1},
		},
		{
			name:     "empty other",
			base:     NewAttributes(Attr("a", 1)),
			other:    Attributes{},
			wantKeys: []string{"a"},
			want:     map[string]any{"a": 1},
		},
		{
			name:     "later keys override and keep position",
			base:     NewAttributes(Attr("a", 1), Attr("b", 2)),
			other:    NewAttributes(Attr("c", 3), Attr("a", 10)),
			wantKeys: []string{"a", "b", "c"},
			want:     map[string]any{"a": 10, "b": 2, "c": 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			baseKeys := tc.base.Keys()
			merged := tc.base.Merge(tc.other)

			assert.Equal(t, tc.wantKeys, merged.Keys())
			assert.Equal(t, tc.want, merged.ToMap())
			assert.Equal(t, baseKeys, tc.base.Keys(), "receiver must not change")
		})
	}
}

func TestAttributesWithAndOnly(t *testing.T) {
	t.Parallel()

	a := NewAttributes(Attr("a", 1), Attr("b", 2), Attr("c", 3))

	b := a.With("d", 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, b.Keys())
	assert.Equal(t, 3, a.Len())

	only := a.Only("c", "a", "missing")
	assert.Equal(t, []string{"a", "c"}, only.Keys())
	assert.Equal(t, 0, a.Only().Len())
}

func TestAttributesKeysIsACopy(t *testing.T) {
	t.Parallel()

	a := NewAttributes(Attr("a", 1))
	keys := a.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, a.Keys())

	m := a.ToMap()
	m["b"] = 2
	assert.False(t, a.Has("b"))
}

func TestAttributesAll(t *testing.T) {
	t.Parallel()

	a := NewAttributes(Attr("x", 1), Attr("y", 2), Attr("z", 3))

	var keys []string
	for k := range a.All() {
		keys = append(keys, k)
		if k == "y" {
			break
		}
	}
	assert.Equal(t, []string{"x", "y"}, keys)
}

type point struct {
	x, y int
}

func TestAttributesEqual(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		a, b  Attributes
		equal bool
	}{
		{"both empty", Attributes{}, NewAttributes(), true},
		{"order is not significant", NewAttributes(Attr("a", 1), Attr("b", 2)), NewAttributes(Attr("b", 2), Attr("a", 1)), true},
		{"deep values", NewAttributes(Attr("s", []string{"x"})), NewAttributes(Attr("s", []string{"x"})), true},
		{"unexported fields", NewAttributes(Attr("p", point{1, 2})), NewAttributes(Attr("p", point{1, 2})), true},
		{"different values", NewAttributes(Attr("a", 1)), NewAttributes(Attr("a", 2)), false},
		{"different keys", NewAttributes(Attr("a", 1)), NewAttributes(Attr("b", 1)), false},
		{"different sizes", NewAttributes(Attr("a", 1)), NewAttributes(Attr("a", 1), Attr("b", 1)), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
			assert.Equal(t, tc.equal, tc.b.Equal(tc.a))
		})
	}
}

func TestAttributesString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{}", Attributes{}.String())
	assert.Equal(t, "{b: 1, a: x}", NewAttributes(Attr("b", 1), Attr("a", "x")).String())
}

func TestAttributesMarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	a := NewAttributes(Attr("z", 1), Attr("a", []string{"x"}), Attr("m", nil))

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":["x"],"m":null}`, string(data))

	data, err = json.Marshal(Attributes{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	_, err = json.Marshal(NewAttributes(Attr("ch", make(chan int))))
	assert.Error(t, err)
}

func TestAttributesMarshalYAMLKeepsOrder(t *testing.T) {
	t.Parallel()

	a := NewAttributes(Attr("z", 1), Attr("a", "x"))

	data, err := yaml.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, "z: 1\na: x\n", string(data))
}

func TestGet(t *testing.T) {
	t.Parallel()

	a := NewAttributes(Attr("n", 42), Attr("s", "str"))

	n, ok := Get[int](a, "n")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = Get[string](a, "n")
	assert.False(t, ok, "wrong type")

	s, ok := Get[string](a, "missing")
	assert.False(t, ok)
	assert.Empty(t, s)

	if diff := cmp.Diff(map[string]any{"n": 42, "s": "str"}, a.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
}
