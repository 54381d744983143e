// Package watch reports debounced changes of an order file
package watch

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before a change is emitted
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // written, created or renamed into place
	ChangeRemoved
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is one debounced change of the watched file
type Change struct {
	Kind ChangeKind
	File string
}

// Watcher monitors a single file. The parent directory is watched so that
// editors replacing the file through a rename are still seen.
type Watcher struct {
	File     string
	Changes  <-chan Change
	Debounce time.Duration

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// New creates a watcher for file
func New(file string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		File:     abs,
		Changes:  ch,
		Debounce: DefaultDebounce,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		logger:   logger.With("component", "watch", "file", abs),
	}, nil
}

// Start begins watching
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		w.watcher.Close()
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emitChange()
				}
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.Debounce {
				w.emitChange()
				pending = time.Time{}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) emitChange() {
	kind := ChangeModified
	if _, err := os.Stat(w.File); errors.Is(err, fs.ErrNotExist) {
		kind = ChangeRemoved
	}
	w.logger.Debug("file changed", "kind", kind)
	w.changes <- Change{Kind: kind, File: w.File}
}
