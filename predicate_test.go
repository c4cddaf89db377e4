// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"testing"
)

func TestPredicates(t *testing.T) {
	t.Parallel()

	var nilPtr *int
	var nilMap map[string]int
	one := 1

	testCases := []struct {
		name      string
		predicate Predicate
		value     any
		want      bool
	}{
		{"IsType match", IsType[int](), 1, true},
		{"IsType mismatch", IsType[int](), "1", false},
		{"IsType nil", IsType[int](), nil, false},
		{"IsType interface", IsType[error](), errWrite, true},
		{"Numeric int", Numeric(), 1, true},
		{"Numeric uint8", Numeric(), uint8(1), true},
		{"Numeric float", Numeric(), 1.5, true},
		{"Numeric string", Numeric(), "1", false},
		{"Numeric nil", Numeric(), nil, false},
		{"NotNil value", NotNil(), 0, true},
		{"NotNil pointer", NotNil(), &one, true},
		{"NotNil nil", NotNil(), nil, false},
		{"NotNil typed nil pointer", NotNil(), nilPtr, false},
		{"NotNil nil map", NotNil(), nilMap, false},
		{"Not", Not(IsType[int]()), "x", true},
		{"And all true", And(NotNil(), Numeric()), 2, true},
		{"And one false", And(NotNil(), Numeric()), "2", false},
		{"And empty", And(), nil, true},
		{"Or one true", Or(IsType[string](), IsType[int]()), 2, true},
		{"Or none true", Or(IsType[string](), IsType[int]()), 2.0, false},
		{"Or empty", Or(), 1, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.predicate(tc.value); got != tc.want {
				t.Errorf("predicate(%v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
