// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"
)

// A RetryPredicate determines whether a failed use case should be retried.
//
// It receives the context, the number of attempts so far, and the failure
// from the last attempt. It returns true to retry, false to stop.
type RetryPredicate = func(ctx context.Context, attempts int, failure *Result) bool

// BackoffOption configures backoff behavior for retry predicates.
type BackoffOption func(*backoffConfig)

type backoffConfig struct {
	fullJitter bool
	maxDelay   time.Duration // 0 means no cap
}

// WithFullJitter waits a random duration between 0 and the calculated delay.
func WithFullJitter() BackoffOption {
	return func(c *backoffConfig) {
		c.fullJitter = true
	}
}

// WithMaxDelay caps the delay, after jitter is applied.
func WithMaxDelay(max time.Duration) BackoffOption {
	return func(c *backoffConfig) {
		c.maxDelay = max
	}
}

func (c *backoffConfig) delay(d time.Duration) time.Duration {
	if c.fullJitter && d > 0 {
		// #nosec G404 -- jitter needs no cryptographic randomness
		d = time.Duration(rand.Int64N(int64(d) + 1))
	}
	if c.maxDelay > 0 && d > c.maxDelay {
		d = c.maxDelay
	}
	return d
}

// Retry wraps a use case so that failures are retried.
//
// After each failure all predicates are consulted; the use case is invoked
// again only if every one of them returns true. Otherwise the last failure is
// returned. Successes are returned immediately.
//
// If no predicates are provided, failures are retried up to 3 attempts with
// exponential backoff starting at 100ms and full jitter.
//
// The engine sees a retried use case as a single invocation, so it produces
// a single transition holding the final result. A retried [Flow] instead
// records the steps of every attempt. The context is checked before each new
// attempt, so a cancelled context stops the retries.
//
// Example:
//
//	fetch := ucase.Retry(FetchRates{},
//	    ucase.UpTo(5),
//	    ucase.OnlyTypes("unavailable"),
//	    ucase.ExponentialBackoff(50*time.Millisecond, ucase.WithMaxDelay(time.Second)),
//	)
func Retry(useCase UseCase, predicates ...RetryPredicate) UseCase {
	if len(predicates) == 0 {
		predicates = []RetryPredicate{
			UpTo(3),
			ExponentialBackoff(100*time.Millisecond, WithFullJitter()),
		}
	}
	return &retryUseCase{useCase: useCase, predicates: predicates}
}

type retryUseCase struct {
	useCase    UseCase
	predicates []RetryPredicate
}

func (r *retryUseCase) Call(ctx context.Context, attrs Attributes) *Result {
	attempts := 0
	for {
		result := r.useCase.Call(ctx, attrs)
		if result == nil || result.IsSuccess() {
			return result
		}
		attempts++
		for _, predicate := range r.predicates {
			if !predicate(ctx, attempts, result) {
				return result
			}
		}
		if ctx.Err() != nil {
			return result
		}
	}
}

func (r *retryUseCase) Name() string { return Name(r.useCase) }

func (r *retryUseCase) Unwrap() UseCase { return r.useCase }

func (r *retryUseCase) DeclaredAttributes() []string {
	return declaredAttributes(r.useCase)
}

// UpTo limits the total number of attempts.
func UpTo(maxAttempts int) RetryPredicate {
	return func(_ context.Context, attempts int, _ *Result) bool {
		return attempts < maxAttempts
	}
}

// OnlyTypes retries only failures of the given types.
func OnlyTypes(types ...Type) RetryPredicate {
	return func(_ context.Context, _ int, failure *Result) bool {
		return slices.Contains(types, failure.Type())
	}
}

// FixedBackoff waits a fixed duration before each retry.
//
// If the context is cancelled during the wait, the predicate returns false
// and the last failure is returned.
func FixedBackoff(delay time.Duration, opts ...BackoffOption) RetryPredicate {
	var cfg backoffConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(ctx context.Context, _ int, _ *Result) bool {
		return wait(ctx, cfg.delay(delay))
	}
}

// ExponentialBackoff waits base × 2^(attempts-1) before each retry.
//
// For example, with a base of 100ms the waits are 100ms, 200ms, 400ms, ...
// If the context is cancelled during the wait, the predicate returns false.
func ExponentialBackoff(base time.Duration, opts ...BackoffOption) RetryPredicate {
	var cfg backoffConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(ctx context.Context, attempts int, _ *Result) bool {
		shift := max(attempts-1, 0)
		if shift > 62 {
			shift = 62
		}
		delay := base * time.Duration(int64(1)<<shift)
		if delay < base {
			delay = base
		}
		return wait(ctx, cfg.delay(delay))
	}
}

func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
