package logger

import (
	"sync"
)

// sysLog is the host logging facility.
type sysLog interface {
	Debug(m string) error
	Info(m string) error
	Err(m string) error
	Close() error
}

// SystemDestination forwards messages to the host logging facility:
// syslog on Unix, the debugger output on Windows.
//
// If the facility is unreachable, messages are dropped and the connection
// is attempted again with the next message.
type SystemDestination struct {
	level   Level
	connect func() (sysLog, error)

	mutex  sync.Mutex
	syslog sysLog
}

// NewSystemDestination allocates a SystemDestination.
func NewSystemDestination(level Level) *SystemDestination {
	return newSystemDestination(level, func() (sysLog, error) {
		return newSysLog("")
	})
}

func newSystemDestination(level Level, connect func() (sysLog, error)) *SystemDestination {
	d := &SystemDestination{
		level:   level,
		connect: connect,
	}

	d.syslog, _ = connect()

	return d
}

// DebugLog implements Destination.
func (d *SystemDestination) DebugLog(message string) {
	d.log(Debug, Debug.tag()+message)
}

// InfoLog implements Destination.
func (d *SystemDestination) InfoLog(message string) {
	d.log(Info, Info.tag()+message+"\n")
}

// ErrorLog implements Destination.
func (d *SystemDestination) ErrorLog(message string) {
	d.log(Error, Error.tag()+message+"\n")
}

func (d *SystemDestination) log(level Level, text string) {
	if !d.level.accepts(level) {
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.syslog == nil {
		if d.connect == nil {
			return
		}

		sl, err := d.connect()
		if err != nil {
			return
		}
		d.syslog = sl
	}

	switch level {
	case Debug:
		d.syslog.Debug(text) //nolint:errcheck

	case Info:
		d.syslog.Info(text) //nolint:errcheck

	default:
		d.syslog.Err(text) //nolint:errcheck
	}
}

// Close implements Destination.
func (d *SystemDestination) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.syslog != nil {
		d.syslog.Close() //nolint:errcheck
		d.syslog = nil
	}
	d.connect = nil
}
