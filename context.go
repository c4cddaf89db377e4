// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"log/slog"
)

// sloggerKey is the context key for the structured logger.
type sloggerKey struct{}

// WithSlogger returns a copy of ctx carrying logger.
//
// [SlogObserver] and use cases that want to log use the logger found in the
// context of the invocation.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	ctx = ucase.WithSlogger(ctx, logger.With("request_id", id))
//	result := engine.Start(ctx, jobs.Build)
func WithSlogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, sloggerKey{}, logger)
}

// Slogger returns the [slog.Logger] from the context, or [slog.Default] if
// none is set.
func Slogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(sloggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}
