// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"slices"
)

// UseCaseInfo describes one use case invocation.
type UseCaseInfo struct {
	// Name is the use case's name; see [Name].
	Name string `json:"name" yaml:"name"`

	// UseCase is the invoked use case itself.
	UseCase UseCase `json:"-" yaml:"-"`

	// Attributes are exactly the attributes the use case received.
	Attributes Attributes `json:"attributes" yaml:"attributes"`
}

// Outcome is the type and data of a recorded result.
type Outcome struct {
	Type   Type       `json:"type" yaml:"type"`
	Result Attributes `json:"result" yaml:"result"`
}

// Transition records one use case invocation within a chain: what was
// invoked, with which attributes, what it returned, and which attributes
// were accessible just before it ran.
//
// Exactly one of Success and Failure is set.
type Transition struct {
	UseCase              UseCaseInfo `json:"use_case" yaml:"use_case"`
	Success              *Outcome    `json:"success,omitempty" yaml:"success,omitempty"`
	Failure              *Outcome    `json:"failure,omitempty" yaml:"failure,omitempty"`
	AccessibleAttributes []string    `json:"accessible_attributes" yaml:"accessible_attributes"`
}

func newTransition(info UseCaseInfo, r *Result, view Attributes) Transition {
	t := Transition{
		UseCase:              info,
		AccessibleAttributes: view.Keys(),
	}
	outcome := &Outcome{Type: r.typ, Result: r.data}
	if r.IsSuccess() {
		t.Success = outcome
	} else {
		t.Failure = outcome
	}
	return t
}

// IsSuccess reports whether the recorded result was a success.
func (t Transition) IsSuccess() bool {
	return t.Success != nil
}

// Outcome returns the recorded outcome, whichever kind it was.
func (t Transition) Outcome() Outcome {
	if t.Success != nil {
		return *t.Success
	}
	if t.Failure != nil {
		return *t.Failure
	}
	return Outcome{}
}

func (t Transition) clone() Transition {
	c := t
	c.AccessibleAttributes = slices.Clone(t.AccessibleAttributes)
	if t.Success != nil {
		s := *t.Success
		c.Success = &s
	}
	if t.Failure != nil {
		f := *t.Failure
		c.Failure = &f
	}
	return c
}

// Transitions is an ordered list of transitions.
type Transitions []Transition

// transitionLog is a persistent list of transitions: appending creates a new
// node pointing at its predecessor and never modifies existing nodes. Chains
// re-started from an earlier result therefore share the common prefix and
// diverge after it.
type transitionLog struct {
	prev   *transitionLog
	record Transition
	size   int
}

func (l *transitionLog) len() int {
	if l == nil {
		return 0
	}
	return l.size
}

func (l *transitionLog) append(t Transition) *transitionLog {
	return &transitionLog{prev: l, record: t, size: l.len() + 1}
}

// records materializes the log in invocation order. A nil log yields an empty,
// non-nil list.
func (l *transitionLog) records() Transitions {
	out := make(Transitions, l.len())
	for n := l; n != nil; n = n.prev {
		out[n.size-1] = n.record.clone()
	}
	return out
}
