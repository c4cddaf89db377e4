// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
)

// A Flow is an ordered sequence of use cases. Each step receives the
// attributes accumulated from the flow's input and every previous successful
// step; the first failure stops the flow.
//
// A Flow is itself a [UseCase], so flows nest. When a flow runs as part of a
// chain, each of its steps is invoked (and recorded) individually.
//
// Example:
//
//	build := ucase.NewFlow(FetchSleeping{}, SetID{})
//	run := ucase.NewFlow(ValidateID{}, SetStateToRunning{})
//
//	result := ucase.Start(ctx, build).Then(ctx, run)
type Flow struct {
	name  string
	steps []UseCase
	safe  bool
}

// NewFlow returns a flow running the given steps in order.
//
// Nested flows are flattened, which makes composition associative:
// NewFlow(a, NewFlow(b, c)) behaves exactly like NewFlow(NewFlow(a, b), c).
func NewFlow(steps ...UseCase) *Flow {
	f := &Flow{}
	f.steps = f.appendSteps(nil, steps)
	return f
}

func (f *Flow) appendSteps(dst []UseCase, steps []UseCase) []UseCase {
	for _, step := range steps {
		if inner, ok := step.(*Flow); ok && inner.name == "" && inner.safe == f.safe {
			dst = append(dst, inner.steps...)
			continue
		}
		dst = append(dst, step)
	}
	return dst
}

// Then returns a new flow running the receiver's steps followed by next.
// The receiver is not modified.
func (f *Flow) Then(next ...UseCase) *Flow {
	g := &Flow{name: f.name, safe: f.safe}
	g.steps = append([]UseCase{}, f.steps...)
	g.steps = g.appendSteps(g.steps, next)
	return g
}

// Named returns a copy of the flow with the given name. Named flows are kept
// as a single step when nested in other flows, but their steps are still
// recorded one by one.
func (f *Flow) Named(name string) *Flow {
	return &Flow{name: name, steps: f.steps, safe: f.safe}
}

// Name returns the flow's name, or "Flow" if it has none.
func (f *Flow) Name() string {
	if f.name == "" {
		return "Flow"
	}
	return f.name
}

// Steps returns a copy of the flow's steps.
func (f *Flow) Steps() []UseCase {
	return append([]UseCase{}, f.steps...)
}

// Call runs the flow on the default engine.
//
// When a decorator such as [Strict] or [Retry] calls a flow it wraps, the
// flow runs on the engine of the enclosing chain instead, and each of its
// steps is recorded in that chain's transitions.
func (f *Flow) Call(ctx context.Context, attrs Attributes) *Result {
	if inv, ok := ctx.Value(invocationKey{}).(*invocation); ok && inv != nil {
		return inv.runFlow(ctx, attrs, f)
	}
	return Default().Call(ctx, f, attrs)
}
