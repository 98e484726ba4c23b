package corpus

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of filesystem events (a session file
// typically receives many rapid appends while a turn streams in) into a
// single refresh notification, mirroring the adapter's directory watcher.
const watchDebounce = 250 * time.Millisecond

// Watch watches dir and each of its immediate subdirectories (Claude Code
// keeps one directory of session files per project, one level deep) for
// .jsonl creates/writes and sends a debounced notification on the
// returned channel. Subdirectories created after Watch starts are not
// watched. The caller must Close the returned io.Closer to stop watching.
func Watch(dir string) (<-chan struct{}, io.Closer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, nil, err
	}
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				_ = w.Add(filepath.Join(dir, e.Name()))
			}
		}
	}

	changes := make(chan struct{}, 1)
	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || filepath.Ext(ev.Name) != ".jsonl" {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case changes <- struct{}{}:
					default:
					}
				})
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, w, nil
}
