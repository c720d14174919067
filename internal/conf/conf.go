// Package conf contains the struct that holds the configuration of the software.
package conf

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/bluenviron/multilog/internal/conf/env"
	"github.com/bluenviron/multilog/internal/logger"
)

// EnvPrefix is the prefix of environment variables that override the file.
const EnvPrefix = "MULTILOG"

func firstThatExists(paths []string) string {
	for _, pa := range paths {
		_, err := os.Stat(pa)
		if err == nil {
			return pa
		}
	}
	return ""
}

// Conf is a configuration.
// Nil fields are absent and take their default in logger.CreateLogger.
type Conf struct {
	LogLevel  *string `json:"LogLevel,omitempty" yaml:"LogLevel,omitempty"`
	LogOutput *string `json:"LogOutput,omitempty" yaml:"LogOutput,omitempty"`
}

var _ logger.Config = (*Conf)(nil)

// Load loads a Conf.
// If fpath is empty, the first existing file of defaultConfPaths is used;
// when none exists, the configuration is empty.
// Environment variables are applied on top of the file.
// The path of the loaded file is returned.
func Load(fpath string, defaultConfPaths []string) (*Conf, string, error) {
	conf := &Conf{}

	fpath, err := conf.loadFromFile(fpath, defaultConfPaths)
	if err != nil {
		return nil, "", err
	}

	err = env.Load(EnvPrefix, conf)
	if err != nil {
		return nil, "", errors.Wrap(err, "unable to load environment")
	}

	return conf, fpath, nil
}

func (conf *Conf) loadFromFile(fpath string, defaultConfPaths []string) (string, error) {
	if fpath == "" {
		fpath = firstThatExists(defaultConfPaths)

		// when the configuration file is not explicitly set,
		// it is optional.
		if fpath == "" {
			return "", nil
		}
	}

	byts, err := os.ReadFile(fpath)
	if err != nil {
		return "", errors.Wrapf(err, "unable to read '%s'", fpath)
	}

	err = yaml.UnmarshalStrict(byts, conf)
	if err != nil {
		return "", errors.Wrapf(err, "unable to parse '%s'", fpath)
	}

	return fpath, nil
}

// Get implements logger.Config.
func (conf *Conf) Get(key string) (string, bool) {
	var v *string

	switch key {
	case logger.KeyLogLevel:
		v = conf.LogLevel

	case logger.KeyLogOutput:
		v = conf.LogOutput
	}

	if v == nil {
		return "", false
	}
	return *v, true
}
