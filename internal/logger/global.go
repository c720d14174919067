package logger

import (
	"errors"
	"sync/atomic"
)

// ErrFailure is returned by ErrorLog.
// It lets callers log and fail in a single statement:
//
//	return logger.ErrorLog("unable to open %s", path)
var ErrFailure = errors.New("failure")

var installed atomic.Pointer[Logger]

// GetLogger returns the process-wide logger, or nil if none is installed.
func GetLogger() *Logger {
	return installed.Load()
}

// SetLogger installs the process-wide logger.
// Passing nil uninstalls it, turning the free functions into no-ops.
// The previous logger is not closed.
func SetLogger(l *Logger) {
	installed.Store(l)
}

// DebugLog writes a debug message to the process-wide logger.
func DebugLog(format string, args ...any) {
	if l := installed.Load(); l != nil {
		l.DebugLog(formatMessage(format, args))
	}
}

// InfoLog writes an info message to the process-wide logger.
func InfoLog(format string, args ...any) {
	if l := installed.Load(); l != nil {
		l.InfoLog(formatMessage(format, args))
	}
}

// ErrorLog writes an error message to the process-wide logger.
// It always returns ErrFailure, even when no logger is installed.
func ErrorLog(format string, args ...any) error {
	if l := installed.Load(); l != nil {
		l.ErrorLog(formatMessage(format, args))
	}
	return ErrFailure
}
