// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Proc adapts a use case into a plain function from attributes to a result,
// running on the engine.
//
// This is useful wherever a function value is expected, e.g. when mapping a
// collection of inputs through the same use case.
func (e *Engine) Proc(ctx context.Context, useCase UseCase) func(Attributes) *Result {
	return func(attrs Attributes) *Result {
		return e.Call(ctx, useCase, attrs)
	}
}

// Map runs a use case once per input, serially, and returns the results in
// input order. Each input gets its own chain, so failures do not affect the
// other inputs.
func (e *Engine) Map(ctx context.Context, useCase UseCase, inputs []Attributes) []*Result {
	results := make([]*Result, len(inputs))
	call := e.Proc(ctx, useCase)
	for i, attrs := range inputs {
		results[i] = call(attrs)
	}
	return results
}

// ParallelOptions specifies how [Engine.MapParallel] runs use cases.
type ParallelOptions struct {
	// Limit controls how many goroutines may run.
	//
	// Numbers less than or equal to zero indicate no limit.
	Limit int
}

// MapParallel runs a use case once per input, concurrently, and returns the
// results in input order.
//
// The use case must be safe for concurrent use. Every input runs to its own
// result; a failure for one input neither cancels nor affects the others.
func (e *Engine) MapParallel(
	ctx context.Context,
	useCase UseCase,
	inputs []Attributes,
	opts ParallelOptions,
) []*Result {
	results := make([]*Result, len(inputs))

	var group errgroup.Group
	if opts.Limit > 0 {
		group.SetLimit(opts.Limit)
	}
	for i, attrs := range inputs {
		group.Go(func() error {
			results[i] = e.Call(ctx, useCase, attrs)
			return nil
		})
	}
	_ = group.Wait() // goroutines never return errors

	return results
}

// Proc adapts a use case into a plain function on the default engine.
//
// Example:
//
//	run := ucase.Proc(ctx, jobs.Run)
//	for _, attrs := range sleepingJobs {
//	    fmt.Println(run(attrs))
//	}
func Proc(ctx context.Context, useCase UseCase) func(Attributes) *Result {
	return Default().Proc(ctx, useCase)
}

// Map runs a use case once per input on the default engine; see
// [Engine.Map].
func Map(ctx context.Context, useCase UseCase, inputs []Attributes) []*Result {
	return Default().Map(ctx, useCase, inputs)
}

// MapParallel runs a use case once per input, concurrently, on the default
// engine; see [Engine.MapParallel].
func MapParallel(ctx context.Context, useCase UseCase, inputs []Attributes, opts ParallelOptions) []*Result {
	return Default().MapParallel(ctx, useCase, inputs, opts)
}
