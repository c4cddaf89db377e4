// SPDX-License-Identifier: Apache-2.0

// Package ucase composes application logic from small, independently
// testable use cases whose outcomes chain into flows.
//
// # The Problem
//
// Business operations tend to grow into long functions mixing validation,
// state changes and error branches. Splitting them into helpers that return
// (value, error) loses the distinction between expected domain failures
// ("the job is already running") and real faults, and leaves no record of
// which steps ran with which inputs when a multi-step operation fails.
//
// # Core Concepts
//
// A [UseCase] receives [Attributes], a read-only set of named values, and
// returns a [Result]:
//
//	type UseCase interface {
//	    Call(ctx context.Context, attrs Attributes) *Result
//	}
//
// A Result is either a success or a failure. Both carry a symbolic [Type]
// ("ok", "state_updated", "invalid_data", ...) and data. Domain failures are
// results, never errors or panics.
//
// Bare functions become use cases with [Func].
//
// # Chaining
//
// [Result.Then] feeds a successful result's data, merged over everything the
// chain accumulated so far, into the next use case. A failure stops the chain:
// every further Then returns it unchanged without invoking anything.
//
//	result := ucase.Start(ctx, FetchSleeping{}).
//	    Then(ctx, SetID{}).
//	    Then(ctx, ValidateID{}).
//	    Then(ctx, SetStateToRunning{})
//
//	result.
//	    OnSuccessOf("state_updated", func(data ucase.Attributes, _ ucase.UseCase) {
//	        job, _ := ucase.Get[jobs.Job](data, "job")
//	        fmt.Println("running", job.ID)
//	    }).
//	    OnFailure(func(data ucase.Attributes, uc ucase.UseCase) {
//	        fmt.Println(ucase.Name(uc), "failed:", data)
//	    })
//
// A [Flow] is a reusable sequence of use cases and is itself a use case:
//
//	build := ucase.NewFlow(FetchSleeping{}, SetID{})
//	run := ucase.NewFlow(ValidateID{}, SetStateToRunning{})
//	result := ucase.Start(ctx, build).Then(ctx, run)
//
// Use cases implementing [AttributeDeclarer] receive only the attributes they
// declare. [Strict] adds presence and type checks before a use case runs,
// [Safe] turns panics into failures and [Retry] retries failures.
//
// # Transitions
//
// When enabled, every result carries the full history of its chain: for each
// invoked use case, the attributes it received, the attributes accessible at
// that point and what it returned.
//
//	for _, t := range result.Transitions() {
//	    fmt.Println(t.UseCase.Name, t.AccessibleAttributes, t.Outcome().Type)
//	}
//
// Recording is decided once per [Engine]. The process-wide [Default] engine
// reads it from the environment (UCASE_ENABLE_TRANSITIONS) on first use;
// see [TransitionsEnabled]. With recording off, Transitions is always empty
// and no record is ever built.
//
// # Observation
//
// An [Observer] is notified around every invocation. [SlogObserver] logs with
// log/slog; the metrics subpackage exports Prometheus metrics.
//
// # Concurrency
//
// A chain runs synchronously in the calling goroutine. Results, attributes
// and transitions are immutable and may be shared freely. Independent flows
// may run concurrently on one engine; [Engine.MapParallel] does so for a
// batch of inputs.
package ucase
