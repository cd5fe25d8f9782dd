// Package watch flags filesystem changes under already-scanned
// directories so the interface can tell the user its numbers are stale.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"duview/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Event is one filesystem change under a watched directory.
type Event struct {
	Path string
	Op   fsnotify.Op
	Time time.Time
}

// Watcher wraps fsnotify and funnels relevant events into one channel.
type Watcher struct {
	directories []string
	events      chan Event
	stopChan    chan struct{}
	fsWatcher   *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a watcher with no directories registered yet.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		events:    make(chan Event, 16),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// AddDirectory registers one directory. Watching is not recursive; the
// caller decides which levels of a tree are worth a watch descriptor.
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.WithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Events returns the channel change notifications arrive on. It is
// closed by Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start launches the event loop. Chmod-only events are dropped because
// they cannot change any size the display shows. A stopped watcher
// cannot be started again; create a new one instead.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.mutex.Unlock()

	go func() {
		// Closing here, in the only goroutine that sends, keeps Stop
		// from pulling the channel out from under a pending send.
		defer close(w.events)
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Chmod {
					continue
				}

				ev := Event{
					Path: event.Name,
					Op:   event.Op,
					Time: time.Now(),
				}

				// Non-blocking send; one delivered event already means
				// stale, so dropping the rest loses nothing.
				select {
				case w.events <- ev:
				default:
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.WithFields(log.F("error", err)).Warn("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop halts the event loop and releases the watch descriptors. The
// event channel closes once the loop drains out.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if err := w.fsWatcher.Close(); err != nil {
		log.WithFields(log.F("error", err)).Warn("error closing fsnotify watcher")
	}
	if !w.running {
		return
	}

	close(w.stopChan)
	w.running = false
}

// IsRunning reports whether the event loop is active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns a copy of the registered directory list.
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}
