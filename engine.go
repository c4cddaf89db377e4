// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// Engine runs use cases and chains their results.
//
// An Engine is immutable once constructed and may be shared by any number of
// concurrent flows. Whether transitions are recorded is decided when the
// engine is built, never per call.
//
// Most programs use the process-wide [Default] engine through the package
// level functions ([Start], [Call], [Bind], ...). Tests and programs that need
// a different configuration build their own:
//
//	engine := ucase.NewEngine(ucase.WithTransitions(false))
//	result := engine.Start(ctx, jobs.Build).Then(ctx, jobs.Run)
type Engine struct {
	transitions bool
	observer    Observer
	stream      *transitionStream
}

// An Option configures an [Engine].
type Option func(*Engine)

// WithTransitions enables or disables transition recording.
func WithTransitions(enabled bool) Option {
	return func(e *Engine) {
		e.transitions = enabled
	}
}

// WithObserver registers an observer notified around every use case
// invocation. Passing several observers combines them.
func WithObserver(observers ...Observer) Option {
	return func(e *Engine) {
		e.observer = NewCompositeObserver(append([]Observer{e.observer}, observers...)...)
	}
}

// WithStreamTo writes every transition as a JSON line to w as soon as it is
// recorded.
//
// Streaming only happens when transitions are enabled. Write failures are
// ignored so that tracing never breaks a flow. Writes are serialized, so
// concurrent flows may share the writer.
func WithStreamTo(w io.Writer) Option {
	return func(e *Engine) {
		if w == nil {
			e.stream = nil
			return
		}
		e.stream = &transitionStream{encoder: json.NewEncoder(w)}
	}
}

// NewEngine returns an engine built from [DefaultConfig] and the given
// options.
func NewEngine(opts ...Option) *Engine {
	return NewEngineFromConfig(DefaultConfig(), opts...)
}

// NewEngineFromConfig returns an engine built from cfg and the given options.
func NewEngineFromConfig(cfg Config, opts ...Option) *Engine {
	e := &Engine{transitions: cfg.EnableTransitions}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TransitionsEnabled reports whether the engine records transitions.
func (e *Engine) TransitionsEnabled() bool {
	return e.transitions
}

// Start runs a use case with no attributes. It is the usual way to begin a
// chain.
func (e *Engine) Start(ctx context.Context, useCase UseCase) *Result {
	return e.run(ctx, Attributes{}, useCase, nil, false)
}

// Call runs a use case with the given attributes.
func (e *Engine) Call(ctx context.Context, useCase UseCase, attrs Attributes) *Result {
	return e.run(ctx, attrs, useCase, nil, false)
}

// Bind binds a use case to attributes on this engine.
func (e *Engine) Bind(useCase UseCase, attrs Attributes) Instance {
	return Instance{useCase: useCase, attrs: attrs, engine: e}
}

// Success returns a successful result that chains on this engine.
func (e *Engine) Success(typ Type, data Attributes) *Result {
	r := Success(typ, data)
	r.engine = e
	return r
}

// Failure returns a failed result that chains on this engine.
func (e *Engine) Failure(typ Type, data Attributes) *Result {
	r := Failure(typ, data)
	r.engine = e
	return r
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Default returns the process-wide engine.
//
// It is built once, on first use, from [ConfigFromEnv]. An invalid
// environment configuration is logged and replaced by [DefaultConfig].
func Default() *Engine {
	defaultOnce.Do(func() {
		cfg, err := ConfigFromEnv()
		if err != nil {
			slog.Default().Warn("ucase: using default configuration", "error", err)
			cfg = DefaultConfig()
		}
		defaultEngine = NewEngineFromConfig(cfg)
	})
	return defaultEngine
}

// TransitionsEnabled reports whether the default engine records transitions.
func TransitionsEnabled() bool {
	return Default().TransitionsEnabled()
}

// Start runs a use case with no attributes on the default engine.
func Start(ctx context.Context, useCase UseCase) *Result {
	return Default().Start(ctx, useCase)
}

// Call runs a use case with the given attributes on the default engine.
func Call(ctx context.Context, useCase UseCase, attrs Attributes) *Result {
	return Default().Call(ctx, useCase, attrs)
}

type transitionStream struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func (s *transitionStream) write(t *Transition) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.encoder.Encode(t) // best effort
}
