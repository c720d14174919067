//go:build !windows && !plan9

package logger

import (
	native "log/syslog"
)

func newSysLog(tag string) (sysLog, error) {
	w, err := native.New(native.LOG_INFO|native.LOG_USER, tag)
	if err != nil {
		return nil, err
	}
	return w, nil
}
