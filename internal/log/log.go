// Package log provides the application-wide structured logger.
package log

import (
	"os"
	"sync/atomic"

	"github.com/paularlott/logger"
	logslog "github.com/paularlott/logger/slog"
)

var defaultLogger atomic.Pointer[logger.Logger]

func init() {
	Configure("info", "console")
}

// Configure sets the global log level and output format.
// Level is one of trace, debug, info, warn, error; format is console or json.
func Configure(level, format string) {
	l := logslog.New(logslog.Config{
		Level:  level,
		Format: format,
		Writer: os.Stderr,
	})
	defaultLogger.Store(&l)
}

// Get returns the configured logger for code that accepts the
// logger.Logger interface directly.
func Get() logger.Logger {
	return *defaultLogger.Load()
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// With returns a logger with the key/value pair attached to every entry.
func With(key string, value any) logger.Logger {
	return Get().With(key, value)
}

// WithError returns a logger with the error attached to every entry.
func WithError(err error) logger.Logger {
	return Get().WithError(err)
}
