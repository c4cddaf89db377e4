// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"reflect"
)

// A Predicate checks a single attribute value.
type Predicate = func(value any) bool

// IsType returns a predicate accepting values of type T.
//
// Example:
//
//	ucase.Schema{"job": ucase.IsType[jobs.Job]()}
func IsType[T any]() Predicate {
	return func(value any) bool {
		_, ok := value.(T)
		return ok
	}
}

// Numeric returns a predicate accepting any integer, unsigned integer or
// floating point value.
func Numeric() Predicate {
	return func(value any) bool {
		if value == nil {
			return false
		}
		switch reflect.TypeOf(value).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
		return false
	}
}

// NotNil returns a predicate rejecting nil values, including typed nil
// pointers, maps and slices.
func NotNil() Predicate {
	return func(value any) bool {
		if value == nil {
			return false
		}
		v := reflect.ValueOf(value)
		switch v.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
			return !v.IsNil()
		}
		return true
	}
}

// Not negates a predicate.
//
// Example:
//
//	ucase.Schema{"name": ucase.Not(ucase.IsType[int]())}
func Not(predicate Predicate) Predicate {
	return func(value any) bool {
		return !predicate(value)
	}
}

// And combines multiple predicates with logical AND. Evaluation
// short-circuits on the first false.
func And(predicates ...Predicate) Predicate {
	return func(value any) bool {
		for _, p := range predicates {
			if !p(value) {
				return false
			}
		}
		return true
	}
}

// Or combines multiple predicates with logical OR. Evaluation short-circuits
// on the first true.
//
// Example:
//
//	ucase.Schema{"id": ucase.Or(ucase.IsType[string](), ucase.IsType[int]())}
func Or(predicates ...Predicate) Predicate {
	return func(value any) bool {
		for _, p := range predicates {
			if p(value) {
				return true
			}
		}
		return false
	}
}
