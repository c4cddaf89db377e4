// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// invocationKey is the context key for the invocation of a decorator.
type invocationKey struct{}

// An invocation is handed to decorators such as [Strict] and [Retry] through
// the context when they wrap a flow, so that the flow continues the chain on
// the same engine and transition log instead of starting over on [Default].
type invocation struct {
	engine *Engine
	safe   bool

	mu       sync.Mutex
	log      *transitionLog
	expanded bool
}

func (inv *invocation) runFlow(ctx context.Context, attrs Attributes, f *Flow) *Result {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	r := inv.engine.runFlow(ctx, attrs, f, inv.log, inv.safe)
	inv.log = r.log
	inv.expanded = true
	return r
}

// decorator is implemented by use cases wrapping another one.
type decorator interface {
	Unwrap() UseCase
}

// wrapsFlow reports whether useCase is a chain of decorators around a [Flow].
func wrapsFlow(useCase UseCase) bool {
	for {
		d, ok := useCase.(decorator)
		if !ok {
			return false
		}
		useCase = d.Unwrap()
		if _, ok := useCase.(*Flow); ok {
			return true
		}
	}
}

// run invokes a use case against the accumulated view. Flows are expanded so
// that each of their steps is invoked, and recorded, on its own.
func (e *Engine) run(
	ctx context.Context,
	view Attributes,
	useCase UseCase,
	log *transitionLog,
	safe bool,
) *Result {
	if f, ok := useCase.(*Flow); ok {
		return e.runFlow(ctx, view, f, log, safe)
	}
	return e.invoke(ctx, view, useCase, log, safe)
}

func (e *Engine) runFlow(
	ctx context.Context,
	view Attributes,
	f *Flow,
	log *transitionLog,
	safe bool,
) *Result {
	safe = safe || f.safe
	if len(f.steps) == 0 {
		return &Result{
			kind:       KindSuccess,
			typ:        TypeOK,
			useCase:    f,
			accessible: view,
			engine:     e,
			log:        log,
		}
	}

	var r *Result
	for _, step := range f.steps {
		if r != nil {
			if r.IsFailure() {
				return r
			}
			view, log = r.view(), r.log
		}
		r = e.run(ctx, view, step, log, safe)
	}
	return r
}

func (e *Engine) invoke(
	ctx context.Context,
	view Attributes,
	useCase UseCase,
	log *transitionLog,
	safe bool,
) *Result {
	input := view
	if names := declaredAttributes(useCase); names != nil {
		input = view.Only(names...)
	}

	// Describing the use case costs reflection, so only pay for it when
	// someone is listening.
	var info UseCaseInfo
	var start time.Time
	if e.transitions || e.observer != nil {
		info = UseCaseInfo{Name: Name(useCase), UseCase: useCase, Attributes: input}
	}
	if e.observer != nil {
		e.observer.OnUseCaseStart(ctx, info)
		start = time.Now()
	}

	// Only a decorated flow continues the chain; any other use case, even one
	// nested below such a flow, must not see the invocation.
	callCtx := ctx
	var inv *invocation
	if wrapsFlow(useCase) {
		inv = &invocation{engine: e, safe: safe, log: log}
		callCtx = context.WithValue(ctx, invocationKey{}, inv)
	} else if outer, _ := ctx.Value(invocationKey{}).(*invocation); outer != nil {
		callCtx = context.WithValue(ctx, invocationKey{}, (*invocation)(nil))
	}

	var returned *Result
	if safe {
		returned = callSafely(callCtx, useCase, input)
	} else {
		returned = useCase.Call(callCtx, input)
	}
	if returned == nil {
		panic(fmt.Errorf("%w: %s returned nil", ErrUnexpectedResult, Name(useCase)))
	}

	// The returned value may be shared by the use case, so it is copied
	// rather than stamped in place.
	r := &Result{
		kind:       returned.kind,
		typ:        returned.typ,
		data:       returned.data,
		useCase:    useCase,
		accessible: view,
		engine:     e,
		log:        log,
	}
	expanded := false
	if inv != nil {
		inv.mu.Lock()
		if inv.expanded {
			// The steps of the wrapped flow are already recorded and streamed.
			expanded, r.log = true, inv.log
		}
		inv.mu.Unlock()
	}
	if !expanded && e.transitions {
		t := newTransition(info, r, view)
		r.log = log.append(t)
		e.stream.write(&t)
	}

	if e.observer != nil {
		e.observer.OnUseCaseFinish(ctx, info, r, time.Since(start))
	}
	return r
}
