package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey keeps logger values from colliding with other packages
type contextKey string

const (
	// LoggerKey carries the request-scoped logger
	LoggerKey contextKey = "logger"
	// RequestIDKey carries the request correlation id
	RequestIDKey contextKey = "request_id"
	// SiteIDKey carries the resolved site id; the sitescope package
	// reads it to filter queries
	SiteIDKey contextKey = "site_id"
	// UserIDKey carries the authenticated user id
	UserIDKey contextKey = "user_id"
)

// WithContext attaches a logger to the context
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the attached logger, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request id and returns a logger tagged with it
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withField(ctx, logger, RequestIDKey, "request_id", requestID)
}

// WithSiteID stores the site id and returns a logger tagged with it.
// Downstream repositories rely on this value for site filtering, so it
// must be set before any scoped query runs.
func WithSiteID(ctx context.Context, logger *zap.Logger, siteID string) (context.Context, *zap.Logger) {
	return withField(ctx, logger, SiteIDKey, "site_id", siteID)
}

// WithUserID stores the user id and returns a logger tagged with it
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return withField(ctx, logger, UserIDKey, "user_id", userID)
}

func withField(ctx context.Context, logger *zap.Logger, key contextKey, field, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	tagged := logger.With(zap.String(field, value))
	return WithContext(ctx, tagged), tagged
}

// GetRequestID returns the request id, or ""
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey)
}

// GetSiteID returns the site id, or ""
func GetSiteID(ctx context.Context) string {
	return stringValue(ctx, SiteIDKey)
}

// GetUserID returns the user id, or ""
func GetUserID(ctx context.Context) string {
	return stringValue(ctx, UserIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
