package export

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-invokes a callback whenever one source file changes on disk,
// debouncing editor save bursts. Watch mode uses it to keep an exported
// snapshot current while the file is being edited.
type Watcher struct {
	path    string // absolute path of the watched file
	watcher *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	lastEvent time.Time
	debounce  time.Duration
	onChange  func()
}

// Watch starts watching path and calls onChange after each (debounced)
// modification. Watching the containing directory instead of the file itself
// survives the rename-and-replace dance most editors do on save.
func Watch(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		watcher:  fsw,
		ctx:      ctx,
		cancel:   cancel,
		debounce: debounce,
		onChange: onChange,
	}
	go w.loop()
	return w, nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.cancel()
	w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			now := time.Now()
			if now.Sub(w.lastEvent) < w.debounce {
				continue
			}
			w.lastEvent = now
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("warning: watch %s: %v", w.path, err)
		}
	}
}
