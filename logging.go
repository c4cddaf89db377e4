// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"log/slog"
	"time"
)

// SlogObserver is an [Observer] that emits structured log records when a use
// case starts and finishes.
//
// Records carry the use case name as "use_case". The finish record adds the
// result's "kind" and "type" and a "duration_ms" attribute.
//
// Example:
//
//	engine := ucase.NewEngine(ucase.WithObserver(&ucase.SlogObserver{Level: slog.LevelDebug}))
//
// This would emit records similar to:
//
//	{"level":"DEBUG","msg":"use case started","use_case":"jobs.SetID"}
//	{"level":"DEBUG","msg":"use case finished","use_case":"jobs.SetID","kind":"success","type":"ok","duration_ms":0}
type SlogObserver struct {
	// Logger receives the records. If nil, the logger from the invocation
	// context is used; see [Slogger].
	Logger *slog.Logger

	// Level is the level of both records.
	Level slog.Level

	// FailureLevel, if set, is used instead of Level for failed results.
	FailureLevel *slog.Level
}

func (o *SlogObserver) logger(ctx context.Context) *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Slogger(ctx)
}

func (o *SlogObserver) OnUseCaseStart(ctx context.Context, info UseCaseInfo) {
	o.logger(ctx).Log(ctx, o.Level, "use case started", "use_case", info.Name)
}

func (o *SlogObserver) OnUseCaseFinish(ctx context.Context, info UseCaseInfo, result *Result, d time.Duration) {
	level := o.Level
	if result.IsFailure() && o.FailureLevel != nil {
		level = *o.FailureLevel
	}
	o.logger(ctx).Log(ctx, level, "use case finished",
		"use_case", info.Name,
		"kind", result.Kind().String(),
		"type", string(result.Type()),
		"duration_ms", d.Milliseconds(),
	)
}
