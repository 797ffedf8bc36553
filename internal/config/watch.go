// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// helpdesk client.
package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// watchDebounce collapses editor write bursts into one reload.
const watchDebounce = 250 * time.Millisecond

// Watcher re-loads the config file when it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
}

// Watch starts watching path and calls onChange with each successfully
// re-loaded config. Invalid intermediate states (half-written files,
// validation failures) are skipped; the previous config stays in effect.
// The parent directory is watched rather than the file itself so renames
// and editor swap-file saves are caught.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{watcher: fw, cancel: cancel}
	go w.run(ctx, path, onChange)
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// run processes events with debouncing until the watcher is closed.
func (w *Watcher) run(ctx context.Context, path string, onChange func(*Config)) {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if cfg, err := Load(path); err == nil {
				onChange(cfg)
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
