//go:build windows

package logger

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procOutputDebugStringW = windows.NewLazySystemDLL("kernel32.dll").NewProc("OutputDebugStringW")

// debugOutput writes to the debugger output stream.
// It has no notion of severity.
type debugOutput struct{}

func newSysLog(_ string) (sysLog, error) {
	err := procOutputDebugStringW.Find()
	if err != nil {
		return nil, err
	}
	return debugOutput{}, nil
}

// cString cuts m at the first NUL, where the debugger output would stop anyway.
func cString(m string) string {
	if i := strings.IndexByte(m, 0); i >= 0 {
		return m[:i]
	}
	return m
}

func (debugOutput) write(m string) error {
	p, err := windows.UTF16PtrFromString(cString(m))
	if err != nil {
		return err
	}
	procOutputDebugStringW.Call(uintptr(unsafe.Pointer(p))) //nolint:errcheck
	return nil
}

func (o debugOutput) Debug(m string) error { return o.write(m) }

func (o debugOutput) Info(m string) error { return o.write(m) }

func (o debugOutput) Err(m string) error { return o.write(m) }

func (debugOutput) Close() error { return nil }
