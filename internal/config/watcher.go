// Package config provides configuration loading and management for lawchat.
package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher reloads the configuration when its file changes on disk and
// delivers each valid result on Updates. Invalid edits are logged and
// skipped; the previous configuration stays in effect.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Config
	done    chan struct{}
}

// Watch starts watching the config file at path. Editors replace files
// rather than rewriting them in place, so the parent directory is watched
// and events are filtered by name.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers each successfully reloaded configuration.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

// run is the watch loop. Writes are debounced because editors commonly emit
// several events per save.
func (w *Watcher) run() {
	var debounce *time.Timer
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
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watch error: %v", err)
		}
	}
}

// reload parses the changed file and publishes it when valid. Only the
// latest configuration is kept if the consumer is behind.
func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := LoadFromPath(w.path)
	if err != nil {
		log.Printf("config reload skipped: %v", err)
		return
	}

	// Drop a stale pending update in favor of this one.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	default:
	}
}
