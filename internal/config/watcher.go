// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for ollamachat.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// debounceDelay coalesces the editor's write-then-rename burst into one
// reload event.
const debounceDelay = 250 * time.Millisecond

// Watcher reloads configuration when the config file changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string

	mu       sync.Mutex
	onReload func(*Config)
	onError  func(error)

	done chan struct{}
	once sync.Once
}

// NewWatcher creates a watcher for the default TOML config path. The watch
// is placed on the parent directory since editors typically replace the
// file via rename, which would silently detach a direct file watch.
func NewWatcher() (*Watcher, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		return nil, err
	}
	return NewWatcherForPath(path)
}

// NewWatcherForPath creates a watcher for a specific config file.
func NewWatcherForPath(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		watcher: fw,
		path:    path,
		done:    make(chan struct{}),
	}, nil
}

// OnReload sets the callback invoked with the freshly loaded config after
// each change. The callback runs on the watcher goroutine.
func (w *Watcher) OnReload(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// OnError sets the callback invoked when a change cannot be loaded. The
// previous configuration stays active in that case.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Start begins watching. Returns immediately; events are handled on a
// background goroutine until Close.
func (w *Watcher) Start() {
	go w.loop()
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notifyError(fmt.Errorf("config watch error: %w", err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		w.notifyError(err)
		return
	}

	SetGlobal(cfg)

	w.mu.Lock()
	fn := w.onReload
	w.mu.Unlock()
	if fn != nil {
		fn(cfg)
	}
}

func (w *Watcher) notifyError(err error) {
	w.mu.Lock()
	fn := w.onError
	w.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}
