// Package confwatcher contains a configuration watcher.
package confwatcher

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bluenviron/multilog/internal/logger"
)

const (
	defaultMinInterval = 1 * time.Second
	additionalWait     = 10 * time.Millisecond
)

// ConfWatcher signals when the configuration file is written or replaced.
type ConfWatcher struct {
	FilePath    string
	MinInterval time.Duration
	Parent      logger.Writer

	inner        *fsnotify.Watcher
	absolutePath string

	// in
	terminate chan struct{}

	// out
	signal chan struct{}
	done   chan struct{}
}

// Initialize initializes a ConfWatcher.
func (w *ConfWatcher) Initialize() error {
	if _, err := os.Stat(w.FilePath); err != nil {
		return err
	}

	if w.MinInterval == 0 {
		w.MinInterval = defaultMinInterval
	}

	var err error
	w.inner, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// watch the parent directory, since editors often replace files instead of writing them
	w.absolutePath, _ = filepath.Abs(w.FilePath)

	err = w.inner.Add(filepath.Dir(w.absolutePath))
	if err != nil {
		w.inner.Close() //nolint:errcheck
		return err
	}

	w.terminate = make(chan struct{})
	w.signal = make(chan struct{})
	w.done = make(chan struct{})

	go w.run()

	return nil
}

// Close closes a ConfWatcher.
func (w *ConfWatcher) Close() {
	close(w.terminate)
	<-w.done
}

// Log implements logger.Writer.
func (w *ConfWatcher) Log(level logger.Level, format string, args ...any) {
	if w.Parent != nil {
		w.Parent.Log(level, "[conf watcher] "+format, args...)
	}
}

func (w *ConfWatcher) isChange(event fsnotify.Event, previous string, current string) bool {
	if current != previous {
		return true
	}

	eventPath, _ := filepath.Abs(event.Name)
	eventPath, _ = filepath.EvalSymlinks(eventPath)

	return eventPath == current && (event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create))
}

func (w *ConfWatcher) run() {
	defer close(w.done)
	defer w.inner.Close() //nolint:errcheck
	defer close(w.signal)

	var lastSignal time.Time
	previous, _ := filepath.EvalSymlinks(w.absolutePath)

	for {
		select {
		case event := <-w.inner.Events:
			if time.Since(lastSignal) < w.MinInterval {
				continue
			}

			current, _ := filepath.EvalSymlinks(w.absolutePath)

			// file was removed; wait for a write to bring it back
			if current == "" {
				previous = ""
				continue
			}

			if !w.isChange(event, previous, current) {
				continue
			}

			// allow the writer to complete its job
			time.Sleep(additionalWait)
			previous = current
			lastSignal = time.Now()

			select {
			case w.signal <- struct{}{}:
			case <-w.terminate:
				return
			}

		case err := <-w.inner.Errors:
			w.Log(logger.Error, "%v", err)
			return

		case <-w.terminate:
			return
		}
	}
}

// Watch returns a channel that is signaled after the configuration file has changed.
// The channel is closed when the watcher stops.
func (w *ConfWatcher) Watch() chan struct{} {
	return w.signal
}
