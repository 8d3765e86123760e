package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/effectc/internal/ctxlog"
	"github.com/specialistvlad/effectc/internal/fsutil"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads manifests from the given files and directories and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// ByExtension is a Loader that dispatches each manifest file to the loader
// registered for its extension (including the dot, e.g. ".hcl").
type ByExtension map[string]Loader

// Load expands directories, loads each file with the matching loader, and
// merges the results in lexical path order regardless of extension, so later
// files override the settings of earlier ones.
func (b ByExtension) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	exts := make([]string, 0, len(b))
	for ext := range b {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	files, err := fsutil.ExpandPaths(paths, exts...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover manifest files: %w", err)
	}
	sort.Strings(files)
	logger.Debug("Discovered manifest files.", "count", len(files))

	model := NewModel()
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file))
		loader, ok := b[ext]
		if !ok {
			return nil, fmt.Errorf("no manifest loader for %q", file)
		}
		m, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(m); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", file, err)
		}
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}
