// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// ReloadInterval is the minimum spacing between two reloads. Editors write a
// file in several steps; the bursts collapse into one reload.
const ReloadInterval = 250 * time.Millisecond

// ReloadFunc receives the freshly loaded config, or the load error.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	onChange ReloadFunc
	watcher  *fsnotify.Watcher
	limiter  *rate.Limiter
	pending  chan struct{}
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Watch starts watching path. The parent directory is watched rather than
// the file so that atomic renames are seen. onChange runs on the watcher
// goroutine.
func Watch(ctx context.Context, path string, onChange ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		watcher:  fw,
		limiter:  rate.NewLimiter(rate.Every(ReloadInterval), 1),
		pending:  make(chan struct{}, 1),
		cancel:   cancel,
	}

	w.wg.Add(2)
	go w.processEvents(ctx)
	go w.processPending(ctx)
	return w, nil
}

// processEvents filters fsnotify events down to the watched file.
func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
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
			select {
			case w.pending <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("CONFIG_WATCH_ERROR | error=%v", err)
		}
	}
}

// processPending reloads the file at most once per ReloadInterval.
func (w *Watcher) processPending(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pending:
		}

		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		// Changes that arrived while waiting are covered by this reload.
		select {
		case <-w.pending:
		default:
		}

		cfg, err := LoadFromPath(w.path)
		if err != nil {
			log.Printf("CONFIG_RELOAD_FAILED | path=%s error=%v", w.path, err)
		} else {
			log.Printf("CONFIG_RELOADED | path=%s", w.path)
		}
		if w.onChange != nil {
			w.onChange(cfg, err)
		}
	}
}

// Close stops watching and waits for the goroutines to exit.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
