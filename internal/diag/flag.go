// Package diag implements the allocator's debug variant: a process-level
// trace toggle, off by default, flippable live without a restart.
package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Flag is a process-level boolean controlling whether the allocator writes
// diagnostic trace lines to stderr.
type Flag struct {
	enabled atomic.Bool
	watcher *fsnotify.Watcher
}

// NewFlag creates a Flag with diagnostics initially disabled.
func NewFlag() *Flag {
	return &Flag{}
}

// Enabled reports whether diagnostic writes are currently on.
func (f *Flag) Enabled() bool {
	return f.enabled.Load()
}

// Set toggles the flag directly, bypassing any watcher.
func (f *Flag) Set(on bool) {
	f.enabled.Store(on)
}

// Watch enables diagnostics whenever path exists, and disables them again
// once it is removed, updating live as the file is created, written, or
// removed. The returned error is only from initial watcher setup;
// subsequent fsnotify errors are swallowed, matching the debug variant's
// "outside the specified surface" status.
func (f *Flag) Watch(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("diag: create watcher: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		f.Set(true)
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("diag: watch %s: %w", path, err)
	}

	f.watcher = w

	go f.loop(path)

	return nil
}

func (f *Flag) loop(path string) {
	for {
		select {
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != path {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				f.Set(true)
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				f.Set(false)
			}
		case _, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the underlying watcher, if Watch was ever called.
func (f *Flag) Close() error {
	if f.watcher == nil {
		return nil
	}

	return f.watcher.Close()
}

// Tracef writes a diagnostic line to stderr, the Go equivalent of the
// original debug build's fprintf(stderr, ...) trace macro.
func Tracef(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "heapalloc: "+format+"\n", args...)
}
