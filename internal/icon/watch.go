package icon

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/yourusername/niri-mirror/internal/logging"
)

// Watcher invalidates a Cache whenever desktop files are added, removed or
// rewritten.
type Watcher struct {
	watcher *fsnotify.Watcher
	cache   *Cache
	dirs    []string
}

// NewWatcher watches <dataDir>/applications for every data dir that has one.
// Directories that do not exist are skipped.
func NewWatcher(cache *Cache, dataDirs []string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{watcher: watcher, cache: cache}
	for _, dataDir := range dataDirs {
		dir := filepath.Join(dataDir, "applications")
		if !isDir(dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			logging.Warn().Err(err).Str("dir", dir).Msg("failed to watch applications directory")
			continue
		}
		w.dirs = append(w.dirs, dir)
	}
	return w, nil
}

// Dirs returns the directories being watched
func (w *Watcher) Dirs() []string {
	return w.dirs
}

// Run processes filesystem events until ctx is cancelled, then closes the watcher
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			logging.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("desktop entries changed, clearing icon cache")
			w.cache.Invalidate()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn().Err(err).Msg("icon watcher error")
		}
	}
}

// Watch is NewWatcher followed by Run. It blocks until ctx is cancelled.
func Watch(ctx context.Context, cache *Cache, dataDirs []string) error {
	w, err := NewWatcher(cache, dataDirs)
	if err != nil {
		return err
	}
	w.Run(ctx)
	return nil
}
