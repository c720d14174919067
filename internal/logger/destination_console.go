package logger

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// ConsoleDestination writes error messages to the standard error.
// Debug and info messages are dropped; to see them on screen,
// use a FileDestination that targets the standard output.
type ConsoleDestination struct {
	out      io.Writer
	useColor bool

	mutex sync.Mutex
	buf   bytes.Buffer
}

// NewConsoleDestination allocates a ConsoleDestination.
func NewConsoleDestination() *ConsoleDestination {
	return &ConsoleDestination{
		out:      os.Stderr,
		useColor: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// DebugLog implements Destination.
func (*ConsoleDestination) DebugLog(string) {}

// InfoLog implements Destination.
func (*ConsoleDestination) InfoLog(string) {}

// ErrorLog implements Destination.
func (d *ConsoleDestination) ErrorLog(message string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.buf.Reset()
	if d.useColor {
		d.buf.WriteString(color.RenderString(color.Error.Code(), "Error:"))
	} else {
		d.buf.WriteString("Error:")
	}
	d.buf.WriteByte(' ')
	d.buf.WriteString(message)
	d.buf.WriteByte('\n')
	d.out.Write(d.buf.Bytes()) //nolint:errcheck
}

// Close implements Destination.
func (*ConsoleDestination) Close() {}
