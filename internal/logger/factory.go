package logger

import (
	"io"
	"os"
	"strings"
)

// Config is a source of already-parsed configuration values.
type Config interface {
	Get(key string) (string, bool)
}

// MapConfig is a Config backed by a map.
type MapConfig map[string]string

// Get implements Config.
func (c MapConfig) Get(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

// configuration keys.
const (
	KeyLogLevel  = "LogLevel"
	KeyLogOutput = "LogOutput"
)

// output keywords. Anything else is a file name.
const (
	outputStdout = "stdout"
	outputStderr = "stderr"
	outputSyslog = "syslog"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func levelFromConfig(cfg Config) (Level, error) {
	v, ok := cfg.Get(KeyLogLevel)
	if !ok {
		v = "info"
	}

	level, err := ParseLevel(v)
	if err != nil {
		ErrorLog("Invalid log level: %s", strings.ToLower(v)) //nolint:errcheck
		return 0, err
	}
	return level, nil
}

type outputs struct {
	stdout    bool
	stderr    bool
	syslog    bool
	filenames []string
}

func parseOutputs(v string) outputs {
	var out outputs
	seen := make(map[string]struct{})

	for _, tok := range strings.Split(v, ",") {
		tok = strings.TrimSpace(tok)

		switch strings.ToLower(tok) {
		case outputStdout:
			out.stdout = true

		case outputStderr:
			out.stderr = true

		case outputSyslog:
			out.syslog = true

		case "":

		default:
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				out.filenames = append(out.filenames, tok)
			}
		}
	}

	return out
}

// CreateLogger allocates a Logger from configuration.
//
// The logger always contains a ConsoleDestination; a FileDestination
// is added when LogOutput names files, stdout or stderr, and a
// SystemDestination when it contains syslog.
// An invalid LogLevel is reported through ErrorLog and returned as an error.
func CreateLogger(cfg Config) (*Logger, error) {
	return createLogger(cfg, os.O_TRUNC)
}

// RecreateLogger is like CreateLogger, but named files are opened in append
// mode. It is meant to build the replacement of a running logger, which may
// write to the same files.
func RecreateLogger(cfg Config) (*Logger, error) {
	return createLogger(cfg, os.O_APPEND)
}

func createLogger(cfg Config, fileFlag int) (*Logger, error) {
	level, err := levelFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	destinations := []Destination{NewConsoleDestination()}

	v, _ := cfg.Get(KeyLogOutput)
	out := parseOutputs(v)

	var streams []io.Writer
	if out.stdout {
		streams = append(streams, stdout)
	}
	if out.stderr {
		streams = append(streams, stderr)
	}

	if len(out.filenames) != 0 || len(streams) != 0 {
		destinations = append(destinations, newFileDestination(level, out.filenames, streams, fileFlag))
	}

	if out.syslog {
		destinations = append(destinations, NewSystemDestination(level))
	}

	return New(destinations...), nil
}
