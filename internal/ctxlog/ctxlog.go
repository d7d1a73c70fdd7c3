// Package ctxlog carries the request or run logger through a context.
package ctxlog

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// Attach stores logger in ctx.
func Attach(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// From returns the logger stored in ctx, or slog.Default.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// With stores the context's logger extended with args, so everything logged
// further down carries them.
func With(ctx context.Context, args ...any) context.Context {
	return Attach(ctx, From(ctx).With(args...))
}
