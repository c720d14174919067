package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/multilog/internal/logger"
	"github.com/bluenviron/multilog/internal/test"
)

func TestConfFromFile(t *testing.T) {
	tmpf, err := test.CreateTempFile([]byte("LogLevel: debug\n" +
		"LogOutput: stdout, MyFile.txt\n"))
	require.NoError(t, err)
	defer os.Remove(tmpf)

	conf, confPath, err := Load(tmpf, nil)
	require.NoError(t, err)
	require.Equal(t, tmpf, confPath)

	v, ok := conf.Get(logger.KeyLogLevel)
	require.True(t, ok)
	require.Equal(t, "debug", v)

	v, ok = conf.Get(logger.KeyLogOutput)
	require.True(t, ok)
	require.Equal(t, "stdout, MyFile.txt", v)

	_, ok = conf.Get("Unknown")
	require.False(t, ok)
}

func TestConfAbsentKeys(t *testing.T) {
	tmpf, err := test.CreateTempFile([]byte("LogOutput: syslog\n"))
	require.NoError(t, err)
	defer os.Remove(tmpf)

	conf, _, err := Load(tmpf, nil)
	require.NoError(t, err)

	_, ok := conf.Get(logger.KeyLogLevel)
	require.False(t, ok)
}

func TestConfDefaultPaths(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "multilog.yml")
	err := os.WriteFile(existing, []byte("LogLevel: error\n"), 0o644)
	require.NoError(t, err)

	conf, confPath, err := Load("", []string{filepath.Join(dir, "missing.yml"), existing})
	require.NoError(t, err)
	require.Equal(t, existing, confPath)
	require.Equal(t, "error", *conf.LogLevel)

	conf, confPath, err = Load("", []string{filepath.Join(dir, "missing.yml")})
	require.NoError(t, err)
	require.Equal(t, "", confPath)
	require.Equal(t, &Conf{}, conf)
}

func TestConfFromEnvironment(t *testing.T) {
	tmpf, err := test.CreateTempFile([]byte("LogLevel: debug\n"))
	require.NoError(t, err)
	defer os.Remove(tmpf)

	t.Setenv("MULTILOG_LOGLEVEL", "error")
	t.Setenv("MULTILOG_LOGOUTPUT", "stderr")

	conf, _, err := Load(tmpf, nil)
	require.NoError(t, err)
	require.Equal(t, "error", *conf.LogLevel)
	require.Equal(t, "stderr", *conf.LogOutput)
}

func TestConfErrors(t *testing.T) {
	_, _, err := Load("/nonexistent/multilog.yml", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)

	for _, ca := range []struct {
		name string
		conf string
	}{
		{"unknown key", "LogFile: out.log\n"},
		{"invalid yaml", "LogLevel: [\n"},
	} {
		t.Run(ca.name, func(t *testing.T) {
			tmpf, err := test.CreateTempFile([]byte(ca.conf))
			require.NoError(t, err)
			defer os.Remove(tmpf)

			_, _, err = Load(tmpf, nil)
			require.Error(t, err)
		})
	}
}

func TestConfCreateLogger(t *testing.T) {
	tmpf, err := test.CreateTempFile([]byte("LogLevel: bogus\n"))
	require.NoError(t, err)
	defer os.Remove(tmpf)

	conf, _, err := Load(tmpf, nil)
	require.NoError(t, err)

	l, err := logger.CreateLogger(conf)
	require.ErrorIs(t, err, logger.ErrInvalidLogLevel)
	require.Nil(t, l)
}
