// Package logger provides structured logging on top of slog.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

const (
	// RequestIDKey carries the X-Request-ID of the inbound request.
	RequestIDKey contextKey = "request_id"
	// ActorKey carries the authenticated actor (JWT subject).
	ActorKey contextKey = "actor"
)

type Logger struct {
	*slog.Logger
}

// New returns a text logger at debug level in development and a JSON logger
// at info level everywhere else.
func New(env string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithContext attaches the request id and actor found in ctx. Work started
// outside a request (scheduler, webhooks) logs without them.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	attrs := make([]any, 0, 2)
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if actor, ok := ctx.Value(ActorKey).(string); ok && actor != "" {
		attrs = append(attrs, slog.String("actor", actor))
	}
	if len(attrs) == 0 {
		return l
	}
	return &Logger{Logger: l.With(attrs...)}
}

// HTTPRequest logs a completed request. Server errors log at error level.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP, requestID string) {
	level := slog.LevelInfo
	if status >= 500 {
		level = slog.LevelError
	}
	l.Log(context.Background(), level, "http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
		slog.String("request_id", requestID),
	)
}

// DependencyFallback logs an external dependency failure that was converted
// into a safe default value.
func (l *Logger) DependencyFallback(dependency, operation string, err error, attrs ...any) {
	args := []any{
		slog.String("dependency", dependency),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	}
	l.Warn("dependency_fallback", append(args, attrs...)...)
}

// AuditWriteFailed logs a best-effort audit write that did not persist.
func (l *Logger) AuditWriteFailed(kind, entityType, entityID string, err error) {
	l.Error("audit_write_failed",
		slog.String("kind", kind),
		slog.String("entity_type", entityType),
		slog.String("entity_id", entityID),
		slog.String("error", err.Error()),
	)
}

func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
