// Package logger is the process-wide slog logger plus helpers for tracing
// service methods and calls to the database and optional backends.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

type requestIDKey struct{}

// Initialize writes to stdout. format is "json" or "text"; level is one of
// debug, info, warn, error and falls back to info.
func Initialize(level, format string) {
	InitializeWithWriter(os.Stdout, level, format)
}

func InitializeWithWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the process logger, creating an info-level text logger on first use
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext returns the process logger carrying the request id of ctx, if any
func FromContext(ctx context.Context) *slog.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return Get().With("request_id", id)
	}
	return Get()
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

func DebugContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).DebugContext(ctx, msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).InfoContext(ctx, msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).WarnContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).ErrorContext(ctx, msg, args...)
}

// trace logs msg at level with the fixed attributes of head ahead of args
func trace(level slog.Level, msg string, head []any, args []any) {
	Get().Log(context.Background(), level, msg, append(head, args...)...)
}

// Service method tracing. Entry and normal exit are debug output; a rejected
// request (validation, ownership, missing record) is a warning and anything
// else an error.

func EnterMethod(methodName string, args ...any) {
	trace(slog.LevelDebug, "→ Method entered", []any{"method", methodName, "event", "enter"}, args)
}

func ExitMethod(methodName string, args ...any) {
	trace(slog.LevelDebug, "← Method exited", []any{"method", methodName, "event", "exit"}, args)
}

func ExitMethodWithError(methodName string, err error, args ...any) {
	trace(slog.LevelError, "← Method exited with error", []any{"method", methodName, "event", "exit", "error", err}, args)
}

func ExitMethodWithWarning(methodName string, err error, args ...any) {
	trace(slog.LevelWarn, "← Method rejected request", []any{"method", methodName, "event", "exit", "error", err}, args)
}

// DatabaseCall logs a query about to run
func DatabaseCall(operation, query string, args ...any) {
	trace(slog.LevelDebug, "→ Database call", []any{"operation", operation, "query", query}, args)
}

// DatabaseResult logs the outcome of a query; failures are errors
func DatabaseResult(operation string, rowsAffected int64, err error, args ...any) {
	outcome("Database call", slog.LevelError, []any{"operation", operation, "rows_affected", rowsAffected}, err, args)
}

// ExternalServiceCall logs a call to redis, the broker or the mailer
func ExternalServiceCall(service, operation string, args ...any) {
	trace(slog.LevelDebug, "→ External service call", []any{"service", service, "operation", operation}, args)
}

// ExternalServiceResult logs the outcome of an external call. Those backends
// are optional, so failures are warnings.
func ExternalServiceResult(service, operation string, err error, args ...any) {
	outcome("External service call", slog.LevelWarn, []any{"service", service, "operation", operation}, err, args)
}

func outcome(what string, failLevel slog.Level, head []any, err error, args []any) {
	if err != nil {
		trace(failLevel, "← "+what+" failed", append(head, "error", err), args)
		return
	}
	trace(slog.LevelDebug, "← "+what+" succeeded", head, args)
}
