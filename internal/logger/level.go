package logger

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a log level.
type Level int

// Log levels.
const (
	Debug Level = iota + 1
	Info
	Error

	// All is a threshold that accepts every level.
	// It is never carried by a message.
	All
)

// ErrInvalidLogLevel is returned when a log level cannot be parsed.
var ErrInvalidLogLevel = errors.New("invalid log level")

// ParseLevel parses a log level, ignoring case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return Debug, nil

	case "info":
		return Info, nil

	case "error":
		return Error, nil

	case "all":
		return All, nil

	default:
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidLogLevel, s)
	}
}

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"

	case Info:
		return "info"

	case Error:
		return "error"

	case All:
		return "all"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// accepts reports whether a destination configured with threshold l
// emits a message of level msg.
func (l Level) accepts(msg Level) bool {
	return l == All || msg >= l
}

func (l Level) tag() string {
	switch l {
	case Debug:
		return "[Debug] "

	case Info:
		return "[Info] "

	default:
		return "[Error] "
	}
}
