// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"path/filepath"
	"slices"
)

// TransitionFilter is a predicate for selecting transitions.
type TransitionFilter func(Transition) bool

func (ts Transitions) matches(t Transition, filters []TransitionFilter) bool {
	for _, filter := range filters {
		if !filter(t) {
			return false
		}
	}
	return true
}

// Find returns the first transition matching all filters, or nil if none
// match.
//
// Example:
//
//	// Where did the flow fail?
//	if t := result.Transitions().Find(ucase.Failed()); t != nil {
//	    log.Printf("%s failed with %s", t.UseCase.Name, t.Failure.Type)
//	}
func (ts Transitions) Find(filters ...TransitionFilter) *Transition {
	for i := range ts {
		if ts.matches(ts[i], filters) {
			return &ts[i]
		}
	}
	return nil
}

// Filter returns the transitions matching all filters, in order. The
// receiver is not modified.
func (ts Transitions) Filter(filters ...TransitionFilter) Transitions {
	filtered := make(Transitions, 0, len(ts))
	for _, t := range ts {
		if ts.matches(t, filters) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Names returns the use case names of the transitions, in order.
func (ts Transitions) Names() []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.UseCase.Name
	}
	return names
}

// UseCaseNamed returns a filter that matches transitions whose use case name
// matches the glob pattern.
//
// Patterns use filepath.Match semantics. If the pattern is malformed, no
// transitions match.
func UseCaseNamed(pattern string) TransitionFilter {
	return func(t Transition) bool {
		matched, err := filepath.Match(pattern, t.UseCase.Name)
		return err == nil && matched
	}
}

// Succeeded returns a filter that matches successful transitions.
func Succeeded() TransitionFilter {
	return func(t Transition) bool {
		return t.Success != nil
	}
}

// Failed returns a filter that matches failed transitions.
func Failed() TransitionFilter {
	return func(t Transition) bool {
		return t.Failure != nil
	}
}

// OfType returns a filter that matches transitions whose result has the
// given type.
func OfType(typ Type) TransitionFilter {
	return func(t Transition) bool {
		return t.Outcome().Type == typ
	}
}

// Accessed returns a filter that matches transitions where the named
// attribute was accessible before the use case ran.
func Accessed(name string) TransitionFilter {
	return func(t Transition) bool {
		return slices.Contains(t.AccessibleAttributes, name)
	}
}
