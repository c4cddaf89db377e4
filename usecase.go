// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
)

// A UseCase is a single unit of business logic mapping attributes to a
// [Result].
//
// Implementations must not retain attrs beyond the call and must be safe to
// invoke repeatedly with different attributes.
type UseCase interface {
	Call(ctx context.Context, attrs Attributes) *Result
}

// Func adapts a bare function to the [UseCase] interface.
//
// Example:
//
//	double := ucase.Func(func(ctx context.Context, attrs ucase.Attributes) *ucase.Result {
//	    n, _ := ucase.Get[int](attrs, "n")
//	    return ucase.Ok(ucase.NewAttributes(ucase.Attr("n", n*2)))
//	})
type Func func(ctx context.Context, attrs Attributes) *Result

// Call invokes f.
func (f Func) Call(ctx context.Context, attrs Attributes) *Result {
	return f(ctx, attrs)
}

// AttributeDeclarer is implemented by use cases that only accept a known set
// of attributes. The engine passes such use cases the declared subset of the
// accumulated view instead of the whole view.
type AttributeDeclarer interface {
	DeclaredAttributes() []string
}

// Instance is a use case bound to its input attributes, ready to run.
type Instance struct {
	useCase UseCase
	attrs   Attributes
	engine  *Engine
}

// Bind binds a use case to attributes on the default engine.
//
// Example:
//
//	job := jobs.Job{State: jobs.Sleeping}
//	result := ucase.Bind(jobs.SetID{}, ucase.NewAttributes(ucase.Attr("job", job))).
//	    Call(ctx).
//	    Then(ctx, jobs.Run)
func Bind(useCase UseCase, attrs Attributes) Instance {
	return Default().Bind(useCase, attrs)
}

// UseCase returns the bound use case.
func (i Instance) UseCase() UseCase { return i.useCase }

// Attributes returns the bound attributes.
func (i Instance) Attributes() Attributes { return i.attrs }

// Call runs the bound use case.
func (i Instance) Call(ctx context.Context) *Result {
	return i.engine.Call(ctx, i.useCase, i.attrs)
}
