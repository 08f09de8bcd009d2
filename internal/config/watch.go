package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/fsnotify/fsnotify"
)

var errEmptyFile = errors.New("settings file is empty")

// reload reads path for the watcher. Unlike LoadFile it never falls back to
// the defaults: a file caught mid-save is an error and the running settings
// stay in place.
func reload(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyFile
	}
	return decode(data, isTOML(path))
}

// Watch reloads the settings file whenever it is written and sends the
// result on the returned channel. The directory is watched rather than the
// file so editors that replace the file on save still trigger a reload.
// The channel is closed when ctx is done.
func Watch(ctx context.Context, path string) (<-chan Settings, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	log := logging.Logger()
	out := make(chan Settings, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				settings, err := reload(path)
				if err != nil {
					log.Warn("skipping settings reload", "path", path, "err", err)
					continue
				}
				log.Info("reloaded settings", "path", path)
				// Only the newest settings matter to the frame loop.
				select {
				case <-out:
				default:
				}
				out <- *settings
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("settings watcher error", "err", err)
			}
		}
	}()
	return out, nil
}
