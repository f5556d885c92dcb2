package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithSearchRequest derives the logger for one search request. Every line it
// writes carries request_id and, when q is set, the query being served.
func WithSearchRequest(ctx context.Context, base *zap.Logger, requestID, q string) (context.Context, *zap.Logger) {
	fields := []zap.Field{zap.String("request_id", requestID)}
	if q != "" {
		fields = append(fields, zap.String("query", q))
	}
	l := base.With(fields...)
	return ContextWithLogger(ctx, l), l
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
