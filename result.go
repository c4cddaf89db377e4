// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"fmt"
)

// Kind distinguishes successful results from failed ones.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is a symbolic sub-tag of a result, such as "ok" or "invalid_data".
//
// Use cases define their own vocabulary; types are compared by value.
type Type string

// Types produced by the package itself.
const (
	TypeOK          Type = "ok"
	TypeError       Type = "error"
	TypeInvalidData Type = "invalid_data"
	TypeException   Type = "exception"
)

// A Handler observes a result's data and the use case that produced it.
//
// The use case is nil for results that were constructed directly rather than
// returned from an invocation.
type Handler = func(data Attributes, useCase UseCase)

// Result is the immutable outcome of a use case: either a success or a
// failure, tagged with a [Type] and carrying [Attributes] as data.
//
// Results are chained with [Result.Then]. Once a chain yields a failure,
// every further Then returns that same failure without invoking anything.
type Result struct {
	kind    Kind
	typ     Type
	data    Attributes
	useCase UseCase

	// accessible is the accumulated view before the producing step ran.
	accessible Attributes

	engine *Engine
	log    *transitionLog
}

// Success returns a successful result of the given type.
//
// Use cases return the value from their Call method; the engine then records
// which use case produced it. Empty data on any type other than [TypeOK]
// becomes {<type>: true}.
func Success(typ Type, data Attributes) *Result {
	return newResult(KindSuccess, typ, data)
}

// Ok returns a successful result of type [TypeOK].
func Ok(data Attributes) *Result {
	return newResult(KindSuccess, TypeOK, data)
}

// Failure returns a failed result of the given type.
//
// Empty data on any type other than [TypeOK] becomes {<type>: true}, so
// Failure("invalid_state_transition", Attributes{}) carries
// {invalid_state_transition: true}.
func Failure(typ Type, data Attributes) *Result {
	return newResult(KindFailure, typ, data)
}

func newResult(kind Kind, typ Type, data Attributes) *Result {
	if typ == "" {
		typ = TypeOK
		if kind == KindFailure {
			typ = TypeError
		}
	}
	if data.Len() == 0 && typ != TypeOK {
		data = NewAttributes(Attr(string(typ), true))
	}
	return &Result{kind: kind, typ: typ, data: data}
}

// Kind returns whether the result is a success or a failure.
func (r *Result) Kind() Kind { return r.kind }

// Type returns the result's symbolic sub-tag.
func (r *Result) Type() Type { return r.typ }

// Data returns the result's payload.
func (r *Result) Data() Attributes { return r.data }

// Value returns a single value from the payload, or nil.
func (r *Result) Value(name string) any { return r.data.Value(name) }

// UseCase returns the use case that produced the result, or nil for results
// built directly with [Success], [Ok] or [Failure].
func (r *Result) UseCase() UseCase { return r.useCase }

// IsSuccess reports whether the result is a success.
func (r *Result) IsSuccess() bool { return r.kind == KindSuccess }

// IsFailure reports whether the result is a failure.
func (r *Result) IsFailure() bool { return r.kind == KindFailure }

// AccessibleAttributes returns the names a following step would see: the
// accumulated view of the chain so far, including this result's data when it
// is a success.
func (r *Result) AccessibleAttributes() []string {
	if r.IsFailure() {
		return r.accessible.Keys()
	}
	return r.view().Keys()
}

// view is the attribute view handed to the next step.
func (r *Result) view() Attributes {
	return r.accessible.Merge(r.data)
}

// Transitions returns the recorded history of the chain that produced this
// result, in invocation order.
//
// It is always empty when transitions are disabled; see [TransitionsEnabled].
// The returned slice is a fresh copy.
func (r *Result) Transitions() Transitions {
	return r.log.records()
}

// Then invokes next with the accumulated attributes if the result is a
// success, and returns next's result. A failure is returned unchanged and
// next is never invoked, so no transition is recorded for it: the last
// transition of a failed chain is always the step that failed.
//
// Example:
//
//	result := ucase.Start(ctx, jobs.Build).
//	    Then(ctx, jobs.Run).
//	    OnFailure(func(data ucase.Attributes, _ ucase.UseCase) {
//	        log.Printf("run failed: %v", data)
//	    })
func (r *Result) Then(ctx context.Context, next UseCase) *Result {
	if r.IsFailure() {
		return r
	}
	return r.engineOrDefault().run(ctx, r.view(), next, r.log, false)
}

func (r *Result) engineOrDefault() *Engine {
	if r.engine != nil {
		return r.engine
	}
	return Default()
}

// OnSuccess calls fn if the result is a success.
func (r *Result) OnSuccess(fn Handler) *Result {
	if r.IsSuccess() {
		fn(r.data, r.useCase)
	}
	return r
}

// OnSuccessOf calls fn if the result is a success of the given type.
func (r *Result) OnSuccessOf(typ Type, fn Handler) *Result {
	if r.IsSuccess() && r.typ == typ {
		fn(r.data, r.useCase)
	}
	return r
}

// OnFailure calls fn if the result is a failure.
func (r *Result) OnFailure(fn Handler) *Result {
	if r.IsFailure() {
		fn(r.data, r.useCase)
	}
	return r
}

// OnFailureOf calls fn if the result is a failure of the given type.
func (r *Result) OnFailureOf(typ Type, fn Handler) *Result {
	if r.IsFailure() && r.typ == typ {
		fn(r.data, r.useCase)
	}
	return r
}

// OnException calls fn if the result is a failure produced by a recovered
// panic; see [Safe].
func (r *Result) OnException(fn func(p *RecoveredPanic, useCase UseCase)) *Result {
	if r.IsFailure() && r.typ == TypeException {
		if p, ok := Get[*RecoveredPanic](r.data, exceptionKey); ok {
			fn(p, r.useCase)
		}
	}
	return r
}

// Equal reports whether both results have the same kind, type and data.
// The producing use case and the recorded transitions are not compared.
func (r *Result) Equal(other *Result) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.kind == other.kind && r.typ == other.typ && r.data.Equal(other.data)
}

func (r *Result) String() string {
	if r.IsSuccess() {
		return fmt.Sprintf("Success(%s)%s", r.typ, r.data)
	}
	return fmt.Sprintf("Failure(%s)%s", r.typ, r.data)
}
