package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce batches the bursts of events editors produce on save.
const defaultDebounce = 200 * time.Millisecond

// WithDebounce sets how long Watch waits after the last change before it
// recomposes.
func WithDebounce(d time.Duration) Option {
	return func(a *App) { a.debounce = d }
}

// Watch composes once and then recomposes, with a fresh registry and cache,
// whenever an effect file or manifest changes. Failures are logged and the
// watch continues. It returns when ctx is done.
func (a *App) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := a.watchDirs()
	for _, dir := range dirs {
		a.addWatch(watcher, dir)
	}
	a.logger.Info("Watching for changes.", "dirs", len(dirs))

	a.rebuild(ctx, false)

	debounce := a.debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	manifestChanged := false

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 && a.watchNewTree(watcher, event.Name) {
				timer.Reset(debounce)
				continue
			}
			kind := a.classify(event.Name)
			if kind == changeNone {
				continue
			}
			a.logger.Debug("Change detected.", "path", event.Name, "op", event.Op.String())
			if kind == changeManifest {
				manifestChanged = true
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("Watcher error.", "error", err)

		case <-timer.C:
			a.rebuild(ctx, manifestChanged)
			manifestChanged = false
		}
	}
}

// watchNewTree starts watching path and every directory below it when path
// is a directory created after startup. It reports whether path was one.
func (a *App) watchNewTree(watcher *fsnotify.Watcher, path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			a.addWatch(watcher, p)
		}
		return nil
	})
	return true
}

func (a *App) addWatch(watcher *fsnotify.Watcher, dir string) {
	if err := watcher.Add(dir); err != nil {
		a.logger.Warn("Cannot watch directory.", "dir", dir, "error", err)
		return
	}
	a.logger.Debug("Watching directory.", "dir", dir)
}

type change int

const (
	changeNone change = iota
	changeEffect
	changeManifest
)

func (a *App) classify(path string) change {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "."+strings.ToLower(a.model.Settings.Extension) {
		return changeEffect
	}
	switch ext {
	case ".hcl", ".yaml", ".yml":
		if a.config.ManifestPath != "" {
			return changeManifest
		}
	}
	return changeNone
}

func (a *App) rebuild(ctx context.Context, reloadManifest bool) {
	if reloadManifest {
		model, err := a.loadModel(ctx)
		if err != nil {
			a.logger.Error("Manifest reload failed, keeping the previous one.", "error", err)
		} else {
			a.model = model
			a.logger.Info("Manifest reloaded.", "programs", len(model.Programs))
		}
	}
	if err := a.composeAndWrite(ctx); err != nil {
		a.logger.Error("Recomposition failed.", "error", err)
		return
	}
	a.logger.Info("Recomposed.")
}

// watchDirs lists every existing directory that can hold an input: the
// base path and embed root trees, the manifest tree and the directories of
// declared file sources.
func (a *App) watchDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	addTree := func(root string) {
		_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(p)
			}
			return nil
		})
	}

	settings := a.model.Settings
	addTree(settings.BasePath)
	if settings.EmbedRoot != "" {
		addTree(settings.EmbedRoot)
	}
	if p := a.config.ManifestPath; p != "" {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			addTree(p)
		} else {
			add(filepath.Dir(p))
		}
	}
	for _, s := range a.model.Sources {
		if !s.Embedded {
			add(filepath.Dir(s.Path))
		}
	}
	return dirs
}
