package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/effectc/internal/config"
	"github.com/specialistvlad/effectc/internal/ctxlog"
	"github.com/specialistvlad/effectc/internal/fsutil"
	"github.com/specialistvlad/effectc/internal/shaderkey"
)

// Extension is the file extension of HCL manifests.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found in paths and merges them into a single
// model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.ExpandPaths(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := config.NewModel()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalContext(file), &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		m, err := translate(file, &root)
		if err != nil {
			return nil, fmt.Errorf("invalid manifest %s: %w", file, err)
		}
		if err := model.Merge(m); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", file, err)
		}
	}

	logger.Debug("HCL loading complete.", "sources", len(model.Sources), "programs", len(model.Programs))
	return model, nil
}

// translate converts the HCL-specific schema of one file into the agnostic
// model. Relative paths are resolved against the file's directory.
func translate(file string, root *fileRoot) (*config.Model, error) {
	m := config.NewModel()
	m.Files = []string{file}

	if s := root.Settings; s != nil {
		m.Settings = config.Settings{
			BasePath:  config.ResolvePath(file, s.BasePath),
			Extension: s.Extension,
			EmbedRoot: config.ResolvePath(file, s.EmbedRoot),
		}
	}

	for _, s := range root.Sources {
		path := s.Path
		if !s.Embedded {
			path = config.ResolvePath(file, path)
		}
		m.Sources = append(m.Sources, &config.Source{Name: s.Name, Path: path, Embedded: s.Embedded})
	}

	for _, p := range root.Programs {
		prog := &config.Program{Name: p.Name}
		for _, sh := range p.Shaders {
			stage, err := shaderkey.ParseStage(sh.Stage)
			if err != nil {
				return nil, fmt.Errorf("program %q: %w", p.Name, err)
			}
			prog.Shaders = append(prog.Shaders, &config.Shader{Stage: stage, Key: sh.Key})
		}
		m.Programs = append(m.Programs, prog)
	}
	return m, nil
}
