// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"time"
)

// Observer receives callbacks around every use case invocation made by an
// [Engine], for logging and metrics.
//
// Implementations should be fast and must not block; they run inline with
// the flow. They must not modify the result they are given.
type Observer interface {
	// OnUseCaseStart is called before the use case runs.
	OnUseCaseStart(ctx context.Context, info UseCaseInfo)

	// OnUseCaseFinish is called after the use case returned, for successes
	// and failures alike.
	OnUseCaseFinish(ctx context.Context, info UseCaseInfo, result *Result, duration time.Duration)
}

// NopObserver is an Observer that does nothing.
type NopObserver struct{}

func (NopObserver) OnUseCaseStart(context.Context, UseCaseInfo) {}

func (NopObserver) OnUseCaseFinish(context.Context, UseCaseInfo, *Result, time.Duration) {}

// CompositeObserver fans out callbacks to multiple observers, in order.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver combines the non-nil observers in obs.
//
// It returns nil when no observer remains, which lets the engine skip all
// observation work, and the observer itself when only one remains.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnUseCaseStart(ctx context.Context, info UseCaseInfo) {
	for _, o := range c.observers {
		o.OnUseCaseStart(ctx, info)
	}
}

func (c *CompositeObserver) OnUseCaseFinish(ctx context.Context, info UseCaseInfo, result *Result, d time.Duration) {
	for _, o := range c.observers {
		o.OnUseCaseFinish(ctx, info, result, d)
	}
}
