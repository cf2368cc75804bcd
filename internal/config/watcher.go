// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

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

// debounceWindow coalesces bursts of filesystem events. Editors commonly
// write a config file with several rapid operations (truncate, write,
// rename); reloading once per burst is enough.
const debounceWindow = 250 * time.Millisecond

// Watcher reloads configuration when the config file changes on disk and
// delivers each successfully loaded snapshot to a callback.
type Watcher struct {
	path     string
	onChange func(*Config)
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher for the active config file. onChange is
// invoked from the watch goroutine with each valid reloaded config;
// invalid edits are skipped so a half-saved file never clobbers settings.
func NewWatcher(onChange func(*Config)) (*Watcher, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: most editors replace the file by
	// rename, which would silently drop a file-level watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{path: path, onChange: onChange, fsw: fsw}, nil
}

// Watch processes filesystem events until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) {
	defer w.fsw.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if cfg, err := LoadFrom(w.path); err == nil {
				w.onChange(cfg)
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; the next event may still arrive.
		}
	}
}
