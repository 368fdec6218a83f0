// Package logger wraps zap with request-scoped fields.
package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextKey keys logger fields stored in a context.
type ContextKey string

// RequestIDKey carries the request id through a context.
const RequestIDKey ContextKey = "request_id"

//nolint:gochecknoglobals // process-wide logger
var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

// Init builds the process logger. "development" gets a colored console
// encoder; anything else gets production JSON.
func Init(env string, verbose bool) (err error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if env == "development" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	var built *zap.Logger
	built, err = config.Build()
	if err != nil {
		return err
	}

	Set(built)
	return err
}

// Set replaces the process logger.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Get returns the process logger.
func Get() (l *zap.Logger) {
	mu.RLock()
	defer mu.RUnlock()
	l = log
	return l
}

// WithRequestID stores a request id in ctx.
func WithRequestID(ctx context.Context, id string) (out context.Context) {
	out = context.WithValue(ctx, RequestIDKey, id)
	return out
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) (id string) {
	if ctx == nil {
		return id
	}
	id, _ = ctx.Value(RequestIDKey).(string)
	return id
}

// WithContext returns the logger with the context's request id attached.
func WithContext(ctx context.Context) (l *zap.Logger) {
	l = Get()
	if id := RequestID(ctx); id != "" {
		l = l.With(zap.String("request_id", id))
	}
	return l
}

// LogRequest logs one served HTTP request.
func LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	WithContext(ctx).Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	)
}
