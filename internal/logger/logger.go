// Package logger contains a multi-destination logger.
package logger

import (
	"fmt"
	"unicode/utf8"
)

// MaxLength is the maximum length in bytes of a formatted message.
// Longer messages are truncated.
const MaxLength = 2048

// Writer is an object that provides a log method.
type Writer interface {
	Log(level Level, format string, args ...any)
}

// Destination is a log destination.
// Each destination applies its own level filter.
type Destination interface {
	DebugLog(message string)
	InfoLog(message string)
	ErrorLog(message string)
	Close()
}

// Logger forwards every message to a fixed, ordered set of destinations.
type Logger struct {
	destinations []Destination
}

// New allocates a Logger.
func New(destinations ...Destination) *Logger {
	return &Logger{
		destinations: append([]Destination(nil), destinations...),
	}
}

// Close closes destinations in reverse order.
func (l *Logger) Close() {
	for i := len(l.destinations) - 1; i >= 0; i-- {
		protect(l.destinations[i].Close)
	}
}

// protect runs cb, discarding any panic it raises.
// A failing destination must not prevent delivery to the others.
func protect(cb func()) {
	defer func() {
		recover()
	}()
	cb()
}

func (l *Logger) forEach(cb func(d Destination)) {
	for _, d := range l.destinations {
		protect(func() { cb(d) })
	}
}

// DebugLog writes a debug message to all destinations.
func (l *Logger) DebugLog(message string) {
	l.forEach(func(d Destination) { d.DebugLog(message) })
}

// InfoLog writes an info message to all destinations.
func (l *Logger) InfoLog(message string) {
	l.forEach(func(d Destination) { d.InfoLog(message) })
}

// ErrorLog writes an error message to all destinations.
func (l *Logger) ErrorLog(message string) {
	l.forEach(func(d Destination) { d.ErrorLog(message) })
}

// Log implements Writer.
func (l *Logger) Log(level Level, format string, args ...any) {
	switch level {
	case Debug:
		l.DebugLog(formatMessage(format, args))

	case Info:
		l.InfoLog(formatMessage(format, args))

	case Error:
		l.ErrorLog(formatMessage(format, args))
	}
}

func formatMessage(format string, args []any) string {
	s := fmt.Sprintf(format, args...)

	if len(s) <= MaxLength {
		return s
	}

	n := MaxLength
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
