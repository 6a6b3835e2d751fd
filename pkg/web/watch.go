package web

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/config"
)

const watchDebounce = 200 * time.Millisecond

// watchManifest reloads the manifest whenever the file changes.
// A failing watcher is logged, the server keeps running without it.
func (s *Server) watchManifest(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Warn("could not create watcher", log.ErrorField(err))
		return nil
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.watchDir); err != nil {
		s.log.Warn("could not watch directory",
			log.String("dir", s.watchDir), log.ErrorField(err))
		return nil
	}
	s.log.Info("watching manifest", log.String("dir", s.watchDir))

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != config.ManifestName ||
				event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				s.log.Debug("manifest changed", log.String("file", event.Name))
				s.reload(ctx)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watcher error", log.ErrorField(err))
		}
	}
}

// reload re-reads the manifest and notifies the connected race lists.
// On failure the previous race list stays in place.
func (s *Server) reload(ctx context.Context) {
	if err := s.state.Reload(ctx); err != nil {
		return
	}
	s.mu.Lock()
	s.version++
	v := s.version
	s.mu.Unlock()
	select {
	case s.reloads <- v:
	case <-ctx.Done():
	}
}
