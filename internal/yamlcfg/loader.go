// Package yamlcfg provides the YAML implementation of the config.Loader
// interface.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/specialistvlad/effectc/internal/config"
	"github.com/specialistvlad/effectc/internal/ctxlog"
	"github.com/specialistvlad/effectc/internal/fsutil"
	"github.com/specialistvlad/effectc/internal/shaderkey"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions of YAML manifests.
var Extensions = []string{".yaml", ".yml"}

type document struct {
	Settings struct {
		BasePath  string `yaml:"base_path"`
		Extension string `yaml:"extension"`
		EmbedRoot string `yaml:"embed_root"`
	} `yaml:"settings"`
	Sources []struct {
		Name     string `yaml:"name"`
		Path     string `yaml:"path"`
		Embedded bool   `yaml:"embedded"`
	} `yaml:"sources"`
	Programs []struct {
		Name string `yaml:"name"`
		// Shaders maps a stage name to a shader key.
		Shaders map[string]string `yaml:"shaders"`
	} `yaml:"programs"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes every YAML manifest found in paths and merges them into a
// single model. Unknown fields are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ExpandPaths(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		var doc document
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		m, err := translate(file, &doc)
		if err != nil {
			return nil, fmt.Errorf("invalid manifest %s: %w", file, err)
		}
		if err := model.Merge(m); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", file, err)
		}
	}

	logger.Debug("YAML loading complete.", "sources", len(model.Sources), "programs", len(model.Programs))
	return model, nil
}

func translate(file string, doc *document) (*config.Model, error) {
	m := config.NewModel()
	m.Files = []string{file}
	m.Settings = config.Settings{
		BasePath:  config.ResolvePath(file, doc.Settings.BasePath),
		Extension: doc.Settings.Extension,
		EmbedRoot: config.ResolvePath(file, doc.Settings.EmbedRoot),
	}

	for _, s := range doc.Sources {
		path := s.Path
		if !s.Embedded {
			path = config.ResolvePath(file, path)
		}
		m.Sources = append(m.Sources, &config.Source{Name: s.Name, Path: path, Embedded: s.Embedded})
	}

	for _, p := range doc.Programs {
		prog := &config.Program{Name: p.Name}
		for name, key := range p.Shaders {
			stage, err := shaderkey.ParseStage(name)
			if err != nil {
				return nil, fmt.Errorf("program %q: %w", p.Name, err)
			}
			prog.Shaders = append(prog.Shaders, &config.Shader{Stage: stage, Key: key})
		}
		sort.Slice(prog.Shaders, func(i, j int) bool {
			return prog.Shaders[i].Stage < prog.Shaders[j].Stage
		})
		m.Programs = append(m.Programs, prog)
	}
	return m, nil
}
