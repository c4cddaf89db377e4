// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// ==== Test Helpers: Engines ====

// tracingEngine returns an engine recording transitions.
func tracingEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithTransitions(true)}, opts...)...)
}

// quietEngine returns an engine that records nothing.
func quietEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithTransitions(false)}, opts...)...)
}

// ==== Test Helpers: Use Cases ====

// set returns a use case named name that succeeds with {key: value}.
func set(name, key string, value any) UseCase {
	return Named(name, Func(func(context.Context, Attributes) *Result {
		return Ok(NewAttributes(Attr(key, value)))
	}))
}

// fail returns a use case named name that fails with the given type.
func fail(name string, typ Type) UseCase {
	return Named(name, Func(func(context.Context, Attributes) *Result {
		return Failure(typ, Attributes{})
	}))
}

// boom returns a use case that panics with v.
func boom(name string, v any) UseCase {
	return Named(name, Func(func(context.Context, Attributes) *Result {
		panic(v)
	}))
}

// recorder is a use case that remembers every input it received.
type recorder struct {
	name     string
	declared []string
	result   *Result

	mu     sync.Mutex
	inputs []Attributes
	calls  atomic.Int64
}

func newRecorder(name string, result *Result, declared ...string) *recorder {
	if result == nil {
		result = Ok(Attributes{})
	}
	return &recorder{name: name, declared: declared, result: result}
}

func (r *recorder) Call(_ context.Context, attrs Attributes) *Result {
	r.calls.Add(1)
	r.mu.Lock()
	r.inputs = append(r.inputs, attrs)
	r.mu.Unlock()
	return r.result
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) lastInput(t *testing.T) Attributes {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.inputs) == 0 {
		t.Fatalf("%s was never called", r.name)
	}
	return r.inputs[len(r.inputs)-1]
}

// declaringRecorder is a recorder that declares its attributes.
type declaringRecorder struct {
	*recorder
}

func (d declaringRecorder) DeclaredAttributes() []string { return d.declared }

// ==== Test Helpers: Observers ====

type observedCall struct {
	phase string
	name  string
	kind  Kind
	typ   Type
}

// recordingObserver records every callback in order.
type recordingObserver struct {
	mu    sync.Mutex
	calls []observedCall
}

func (o *recordingObserver) OnUseCaseStart(_ context.Context, info UseCaseInfo) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, observedCall{phase: "start", name: info.Name})
}

func (o *recordingObserver) OnUseCaseFinish(_ context.Context, info UseCaseInfo, r *Result, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, observedCall{phase: "finish", name: info.Name, kind: r.Kind(), typ: r.Type()})
}

func (o *recordingObserver) snapshot() []observedCall {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]observedCall{}, o.calls...)
}
