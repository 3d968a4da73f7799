package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a private type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey carries the request-scoped logger
	LoggerKey contextKey = "logger"
	// RequestIDKey carries the request ID
	RequestIDKey contextKey = "request_id"
	// EntityIDKey carries the tenant entity ID
	EntityIDKey contextKey = "entity_id"
	// UserIDKey carries the authenticated user ID
	UserIDKey contextKey = "user_id"
)

// WithContext attaches a logger to the context
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger attached to the context, or a no-op
// logger when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// enrich stores the value under key and returns a context carrying a
// logger that tags every entry with the same value.
func enrich(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	logger = logger.With(zap.String(string(key), value))
	return WithContext(ctx, logger), logger
}

// WithRequestID records the request ID on the context and logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return enrich(ctx, logger, RequestIDKey, requestID)
}

// WithEntityID records the tenant entity ID on the context and logger
func WithEntityID(ctx context.Context, logger *zap.Logger, entityID string) (context.Context, *zap.Logger) {
	return enrich(ctx, logger, EntityIDKey, entityID)
}

// WithUserID records the user ID on the context and logger
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return enrich(ctx, logger, UserIDKey, userID)
}

// GetRequestID returns the request ID from the context, if any
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey)
}

// GetEntityID returns the tenant entity ID from the context, if any
func GetEntityID(ctx context.Context) string {
	return stringValue(ctx, EntityIDKey)
}

// GetUserID returns the user ID from the context, if any
func GetUserID(ctx context.Context) string {
	return stringValue(ctx, UserIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
