// Package logger provides a zap-based application logger.
package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a Logger writes.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// TraceIDFn extracts a trace id from a context, returning "" when there is none.
type TraceIDFn func(ctx context.Context) string

// Logger writes structured JSON records tagged with the service name and,
// when available, the trace id of the request.
type Logger struct {
	log     *zap.SugaredLogger
	traceID TraceIDFn
}

// New creates a Logger writing to w.
func New(w io.Writer, level Level, service string, traceID TraceIDFn) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(w), level)
	log := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(zap.String("service", service))
	return &Logger{log: log.Sugar(), traceID: traceID}
}

// ParseLevel converts a level name such as "debug" or "warn".
func ParseLevel(s string) (Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.log.Debugw(msg, l.with(ctx, keysAndValues)...)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.log.Infow(msg, l.with(ctx, keysAndValues)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	l.log.Warnw(msg, l.with(ctx, keysAndValues)...)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, l.with(ctx, keysAndValues)...)
}

// Sync flushes buffered records.
func (l *Logger) Sync() error {
	return l.log.Sync()
}

func (l *Logger) with(ctx context.Context, kv []any) []any {
	if l.traceID == nil {
		return kv
	}
	if id := l.traceID(ctx); id != "" {
		return append([]any{"trace_id", id}, kv...)
	}
	return kv
}
