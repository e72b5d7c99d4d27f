package dxf

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/firecad/firecad"
)

const debounceDelay = 250 * time.Millisecond

// Watcher reports changes to an underlay file so callers can reimport
// it. Editors often write a file in several bursts, so events are
// debounced before delivery.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

// Watch starts watching the underlay at path. The parent directory is
// watched rather than the file itself so save-by-rename is still seen.
func Watch(path string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("dxf: watch: %w", err)
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("dxf: watch %s: %w", path, err)
	}
	w := &Watcher{
		path:    path,
		fs:      fs,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers the underlay path after each settled burst of writes.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher and releases its file handles.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceDelay)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			firecad.Logger().Warn("dxf: watch error", "path", w.path, "err", err)
		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.changes <- w.path:
			default:
			}
		}
	}
}
