//go:build plan9

package logger

import (
	"fmt"
)

func newSysLog(_ string) (sysLog, error) {
	return nil, fmt.Errorf("unavailable on plan9")
}
