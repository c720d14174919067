// Package test contains test utilities.
package test

import (
	"sync"

	"github.com/bluenviron/multilog/internal/logger"
)

// Entry is a message received by a Destination.
type Entry struct {
	Level   logger.Level
	Message string
}

// Destination is a logger.Destination that stores every message it receives.
type Destination struct {
	mutex   sync.Mutex
	entries []Entry
	closed  bool
}

func (d *Destination) add(level logger.Level, message string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.entries = append(d.entries, Entry{level, message})
}

// DebugLog implements logger.Destination.
func (d *Destination) DebugLog(message string) { d.add(logger.Debug, message) }

// InfoLog implements logger.Destination.
func (d *Destination) InfoLog(message string) { d.add(logger.Info, message) }

// ErrorLog implements logger.Destination.
func (d *Destination) ErrorLog(message string) { d.add(logger.Error, message) }

// Close implements logger.Destination.
func (d *Destination) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.closed = true
}

// Entries returns a copy of the received messages.
func (d *Destination) Entries() []Entry {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([]Entry(nil), d.entries...)
}

// Closed reports whether Close has been called.
func (d *Destination) Closed() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.closed
}
