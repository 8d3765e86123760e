package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/effectc/internal/shaderkey"
	"github.com/specialistvlad/effectc/internal/source"
)

// Model is the unified, format-agnostic representation of one or more
// manifest files.
type Model struct {
	Settings Settings
	Sources  []*Source
	Programs []*Program
	// Files lists the manifest files the model was loaded from.
	Files []string
}

// Settings configures the source registry.
type Settings struct {
	BasePath  string
	Extension string
	// EmbedRoot is a directory served as the embedded container. Empty means
	// the builtin effect library.
	EmbedRoot string
}

// Source is the format-agnostic representation of a `source` declaration.
type Source struct {
	Name     string
	Path     string
	Embedded bool
}

// Program is a named set of shaders, one per stage.
type Program struct {
	Name    string
	Shaders []*Shader
}

// Shader is a single stage of a program.
type Shader struct {
	Stage shaderkey.Stage
	Key   string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// Program returns the program with the given name, matched
// case-insensitively.
func (m *Model) Program(name string) (*Program, bool) {
	for _, p := range m.Programs {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// Declarations converts the model's sources into registry declarations.
func (m *Model) Declarations() []source.Declaration {
	decls := make([]source.Declaration, 0, len(m.Sources))
	for _, s := range m.Sources {
		decls = append(decls, source.NewDeclaration(s.Path, s.Name, s.Embedded, m.Settings.Extension))
	}
	return decls
}

// Merge folds other into m. Non-empty settings in other override m, sources
// are appended in order, and a program name may only be defined once.
func (m *Model) Merge(other *Model) error {
	if other.Settings.BasePath != "" {
		m.Settings.BasePath = other.Settings.BasePath
	}
	if other.Settings.Extension != "" {
		m.Settings.Extension = other.Settings.Extension
	}
	if other.Settings.EmbedRoot != "" {
		m.Settings.EmbedRoot = other.Settings.EmbedRoot
	}
	m.Sources = append(m.Sources, other.Sources...)
	for _, p := range other.Programs {
		if _, exists := m.Program(p.Name); exists {
			return fmt.Errorf("program %q is defined more than once", p.Name)
		}
		m.Programs = append(m.Programs, p)
	}
	m.Files = append(m.Files, other.Files...)
	return nil
}

// Validate checks the model for errors that do not depend on any effect
// file being present.
func (m *Model) Validate() error {
	for _, s := range m.Sources {
		if s.Path == "" {
			return fmt.Errorf("source %q: path is required", s.Name)
		}
	}
	for _, p := range m.Programs {
		if p.Name == "" {
			return fmt.Errorf("program name must not be empty")
		}
		if len(p.Shaders) == 0 {
			return fmt.Errorf("program %q has no shaders", p.Name)
		}
		seen := make(map[shaderkey.Stage]bool)
		for _, sh := range p.Shaders {
			if seen[sh.Stage] {
				return fmt.Errorf("program %q: stage %s is defined more than once", p.Name, sh.Stage)
			}
			seen[sh.Stage] = true
			if _, err := shaderkey.Parse(sh.Key); err != nil {
				return fmt.Errorf("program %q, stage %s: %w", p.Name, sh.Stage, err)
			}
		}
	}
	return nil
}

// ResolvePath makes a relative path absolute against the directory of the
// manifest file it was read from.
func ResolvePath(manifest, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(manifest), p)
}
