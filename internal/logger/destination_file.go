package logger

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sync"
)

type managedFile struct {
	name string
	file *os.File
	w    *bufio.Writer
}

func openFile(name string, flag int) (*managedFile, error) {
	f, err := os.OpenFile(name, flag|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	return &managedFile{
		name: name,
		file: f,
		w:    bufio.NewWriter(f),
	}, nil
}

// commit pushes buffered content to storage and closes the file.
func (f *managedFile) commit() {
	f.w.Flush()    //nolint:errcheck
	f.file.Sync()  //nolint:errcheck
	f.file.Close() //nolint:errcheck
}

// FileDestination writes messages to named files and to already-open streams.
//
// Debug messages are buffered. After an info or error message, buffered
// content is flushed and every named file is synced, closed and reopened
// in append mode, so the message is on storage when the call returns.
// Streams are written to but never closed or reopened.
type FileDestination struct {
	level Level

	mutex   sync.Mutex
	files   []*managedFile
	streams []io.Writer
	buf     bytes.Buffer
}

// NewFileDestination allocates a FileDestination.
// Named files are truncated. Files that cannot be opened are skipped.
func NewFileDestination(level Level, filenames []string, streams []io.Writer) *FileDestination {
	return newFileDestination(level, filenames, streams, os.O_TRUNC)
}

func newFileDestination(level Level, filenames []string, streams []io.Writer, flag int) *FileDestination {
	d := &FileDestination{
		level:   level,
		streams: append([]io.Writer(nil), streams...),
	}

	seen := make(map[string]struct{}, len(filenames))

	for _, name := range filenames {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		f, err := openFile(name, flag)
		if err != nil {
			continue
		}
		d.files = append(d.files, f)
	}

	return d
}

// filenames returns the names of the files that are currently managed.
func (d *FileDestination) filenames() []string {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	out := make([]string, len(d.files))
	for i, f := range d.files {
		out[i] = f.name
	}
	return out
}

// Close flushes and closes all named files.
func (d *FileDestination) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for _, f := range d.files {
		f.commit()
	}
	d.files = nil
	d.streams = nil
}

// DebugLog implements Destination.
func (d *FileDestination) DebugLog(message string) {
	d.log(Debug, message, false)
}

// InfoLog implements Destination.
func (d *FileDestination) InfoLog(message string) {
	d.log(Info, message, true)
}

// ErrorLog implements Destination.
func (d *FileDestination) ErrorLog(message string) {
	d.log(Error, message, true)
}

func (d *FileDestination) log(level Level, message string, durable bool) {
	if !d.level.accepts(level) {
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.buf.Reset()
	d.buf.WriteString(level.tag())
	d.buf.WriteString(message)
	d.buf.WriteByte('\n')

	for _, f := range d.files {
		f.w.Write(d.buf.Bytes()) //nolint:errcheck
	}

	for _, s := range d.streams {
		s.Write(d.buf.Bytes()) //nolint:errcheck
	}

	if durable {
		d.reopen()
	}
}

// reopen commits and reopens every named file.
// Files that cannot be reopened are dropped.
func (d *FileDestination) reopen() {
	n := 0

	for _, f := range d.files {
		f.commit()

		nf, err := openFile(f.name, os.O_APPEND)
		if err != nil {
			continue
		}

		d.files[n] = nf
		n++
	}

	for i := n; i < len(d.files); i++ {
		d.files[i] = nil
	}
	d.files = d.files[:n]
}
