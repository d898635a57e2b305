package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around zap that the rest of the library passes
// around. Keeping our own type lets middleware and adapters depend on a single
// logging surface instead of zap directly.
type Logger struct {
	zap   *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger wraps an existing zap logger.
func NewLogger(z *zap.Logger) *Logger {
	return &Logger{
		zap:   z,
		sugar: z.Sugar(),
	}
}

var globalInstance atomic.Pointer[Logger]

// SetInstance replaces the process-wide default logger.
func SetInstance(log *Logger) {
	globalInstance.Store(log)
}

// Instance returns the process-wide default logger. Before InitLogger or
// SetInstance has run it returns a no-op logger, so library code can always
// log without nil checks.
func Instance() *Logger {
	if log := globalInstance.Load(); log != nil {
		return log
	}
	return NewLogger(zap.NewNop())
}

// With returns a child logger with the fields appended to every entry.
func (log *Logger) With(fields ...Field) *Logger {
	return NewLogger(log.zap.With(fields...))
}

// Zap exposes the underlying zap logger for integrations that need it.
func (log *Logger) Zap() *zap.Logger {
	return log.zap
}

func (log *Logger) Debug(msg string, fields ...Field) {
	log.zap.Debug(msg, fields...)
}

func (log *Logger) Info(msg string, fields ...Field) {
	log.zap.Info(msg, fields...)
}

func (log *Logger) Warn(msg string, fields ...Field) {
	log.zap.Warn(msg, fields...)
}

func (log *Logger) Error(msg string, fields ...Field) {
	log.zap.Error(msg, fields...)
}

func (log *Logger) Fatal(msg string, fields ...Field) {
	log.zap.Fatal(msg, fields...)
}

// Log writes an entry at an arbitrary level, used by middleware that picks
// the level from the response status.
func (log *Logger) Log(level Level, msg string, fields ...Field) {
	log.zap.Log(zapcore.Level(level), msg, fields...)
}

// Printf-style methods satisfy logging interfaces of third-party clients
// (e.g. resty.Logger).

func (log *Logger) Debugf(format string, v ...interface{}) {
	log.sugar.Debugf(format, v...)
}

func (log *Logger) Infof(format string, v ...interface{}) {
	log.sugar.Infof(format, v...)
}

func (log *Logger) Warnf(format string, v ...interface{}) {
	log.sugar.Warnf(format, v...)
}

func (log *Logger) Errorf(format string, v ...interface{}) {
	log.sugar.Errorf(format, v...)
}

// Sync flushes any buffered log entries.
func (log *Logger) Sync() error {
	return log.zap.Sync()
}
