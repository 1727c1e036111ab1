package logging

import (
	"context"
	"log/slog"
)

// contextKey keeps the logger key private to this package.
type contextKey string

const loggerKey = contextKey("logger")

// WithLogger returns a context carrying an operation-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromCtx retrieves the operation-scoped logger from the context, falling
// back to the default logger.
func FromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
