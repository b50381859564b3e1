package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const loggerKey contextKey = iota

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, OrDefault(logger))
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithField adds a single field to the logger in the context. Errors are
// logged by their message.
func WithField(ctx context.Context, key string, value any) context.Context {
	lc := FromContext(ctx).With()
	if err, ok := value.(error); ok {
		lc = lc.AnErr(key, err)
	} else {
		lc = lc.Interface(key, value)
	}
	logger := lc.Logger()
	return WithLogger(ctx, &logger)
}

// WithDataset adds the name of the dataset being processed.
func WithDataset(ctx context.Context, dataset string) context.Context {
	return WithField(ctx, "dataset", dataset)
}

// WithService adds a service identifier to the logger.
func WithService(ctx context.Context, serviceID string) context.Context {
	return WithField(ctx, "service_id", serviceID)
}

// WithBuild adds the hierarchy build identifier to the logger.
func WithBuild(ctx context.Context, buildID string) context.Context {
	return WithField(ctx, "build_id", buildID)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}
