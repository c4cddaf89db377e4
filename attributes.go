// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// An Attribute is a single named value.
type Attribute struct {
	Name  string
	Value any
}

// Attr is shorthand for constructing an [Attribute].
func Attr(name string, value any) Attribute {
	return Attribute{Name: name, Value: value}
}

// Attributes is an immutable, insertion-ordered set of named values.
//
// Attributes are what use cases receive as input and what results carry as
// their data. Every method that derives a new set returns a fresh value and
// leaves the receiver untouched, so Attributes can be shared between
// goroutines without synchronization.
//
// The zero value is an empty set.
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes builds a set from the given attributes, in order.
//
// If a name appears more than once, the last value wins but the name keeps
// the position of its first occurrence.
func NewAttributes(attrs ...Attribute) Attributes {
	if len(attrs) == 0 {
		return Attributes{}
	}
	a := Attributes{
		keys:   make([]string, 0, len(attrs)),
		values: make(map[string]any, len(attrs)),
	}
	for _, attr := range attrs {
		if _, ok := a.values[attr.Name]; !ok {
			a.keys = append(a.keys, attr.Name)
		}
		a.values[attr.Name] = attr.Value
	}
	return a
}

// AttributesOf builds a set from a map. Since maps are unordered, the names
// are sorted to keep the result deterministic.
func AttributesOf(m map[string]any) Attributes {
	if len(m) == 0 {
		return Attributes{}
	}
	a := Attributes{
		keys:   make([]string, 0, len(m)),
		values: make(map[string]any, len(m)),
	}
	for k, v := range m {
		a.keys = append(a.keys, k)
		a.values[k] = v
	}
	slices.Sort(a.keys)
	return a
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a.keys)
}

// Keys returns a copy of the attribute names in order.
func (a Attributes) Keys() []string {
	return append([]string{}, a.keys...)
}

// Has reports whether the named attribute is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Get returns the named value and whether it was present.
func (a Attributes) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Value returns the named value, or nil if it is absent.
func (a Attributes) Value(name string) any {
	return a.values[name]
}

// All iterates over the attributes in order.
func (a Attributes) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range a.keys {
			if !yield(k, a.values[k]) {
				return
			}
		}
	}
}

// ToMap returns a copy of the attributes as a plain map.
func (a Attributes) ToMap() map[string]any {
	m := make(map[string]any, len(a.keys))
	for _, k := range a.keys {
		m[k] = a.values[k]
	}
	return m
}

// With returns a copy of the set with the named value added or replaced.
func (a Attributes) With(name string, value any) Attributes {
	return a.Merge(NewAttributes(Attr(name, value)))
}

// Merge overlays other on top of the receiver.
//
// Names already present keep their position and take the value from other;
// new names are appended in the order they appear in other.
func (a Attributes) Merge(other Attributes) Attributes {
	if other.Len() == 0 {
		return a
	}
	if a.Len() == 0 {
		return other
	}
	merged := Attributes{
		keys:   make([]string, len(a.keys), len(a.keys)+len(other.keys)),
		values: make(map[string]any, len(a.keys)+len(other.keys)),
	}
	copy(merged.keys, a.keys)
	for _, k := range a.keys {
		merged.values[k] = a.values[k]
	}
	for _, k := range other.keys {
		if _, ok := merged.values[k]; !ok {
			merged.keys = append(merged.keys, k)
		}
		merged.values[k] = other.values[k]
	}
	return merged
}

// Only returns the subset of attributes whose names are listed. Absent names
// are ignored, and the receiver's order is preserved.
func (a Attributes) Only(names ...string) Attributes {
	filtered := Attributes{values: make(map[string]any, len(names))}
	for _, k := range a.keys {
		if slices.Contains(names, k) {
			filtered.keys = append(filtered.keys, k)
			filtered.values[k] = a.values[k]
		}
	}
	return filtered
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal reports whether both sets hold the same names with deeply equal
// values. Order is not significant.
func (a Attributes) Equal(other Attributes) bool {
	if a.Len() != other.Len() {
		return false
	}
	for _, k := range a.keys {
		ov, ok := other.values[k]
		if !ok {
			return false
		}
		if !cmp.Equal(a.values[k], ov, exportAll) {
			return false
		}
	}
	return true
}

// String renders the attributes as {name: value, ...}.
func (a Attributes) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, a.values[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// MarshalJSON encodes the attributes as a JSON object, keeping their order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the attributes as a YAML mapping, keeping their order.
func (a Attributes) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range a.keys {
		var value yaml.Node
		if err := value.Encode(a.values[k]); err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	}
	return node, nil
}

// Get returns the named attribute converted to T.
//
// The second return value is false if the attribute is absent or holds a
// value of a different type.
//
// Example:
//
//	job, ok := ucase.Get[jobs.Job](attrs, "job")
func Get[T any](attrs Attributes, name string) (T, bool) {
	v, ok := attrs.values[name]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
