// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package source

import (
	"bytes"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultExtension is appended to synthesized effect locations.
	DefaultExtension = "glsl"
)

// DefaultBasePath is the directory synthesized effect locations are rooted at.
var DefaultBasePath = filepath.Join("Data", "Shaders")

// Registry maps logical source names to SourceFiles and reads their text.
// A Registry is safe for concurrent use once constructed.
type Registry struct {
	basePath  string
	extension string
	files     Provider
	embedded  Provider
	decls     []Declaration
	fallbacks []Declaration
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithBasePath sets the directory synthesized and fallback locations are joined under.
func WithBasePath(p string) Option {
	return func(r *Registry) { r.basePath = p }
}

// WithExtension sets the default extension, with or without the leading dot.
func WithExtension(ext string) Option {
	return func(r *Registry) { r.extension = strings.TrimPrefix(ext, ".") }
}

// WithFiles replaces the provider used for non-embedded sources.
func WithFiles(p Provider) Option {
	return func(r *Registry) { r.files = p }
}

// WithEmbedded sets the container used for embedded sources.
func WithEmbedded(p Provider) Option {
	return func(r *Registry) { r.embedded = p }
}

// WithDeclarations appends explicit source declarations. Earlier declarations
// win when two of them match the same name.
func WithDeclarations(decls ...Declaration) Option {
	return func(r *Registry) { r.decls = append(r.decls, decls...) }
}

// WithFallbackDeclarations appends declarations consulted only when neither
// an explicit declaration nor the synthesized location matches a name. Files
// under the base path therefore shadow them.
func WithFallbackDeclarations(decls ...Declaration) Option {
	return func(r *Registry) { r.fallbacks = append(r.fallbacks, decls...) }
}

// WithLogger sets the logger resolution is reported to. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates a Registry reading files from the local file system,
// rooted at DefaultBasePath with DefaultExtension, and applies opts.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		basePath:  DefaultBasePath,
		extension: DefaultExtension,
		files:     OSProvider{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// BasePath returns the configured base directory.
func (r *Registry) BasePath() string { return r.basePath }

// Extension returns the configured default extension without a leading dot.
func (r *Registry) Extension() string { return r.extension }

// Declarations returns a copy of the explicit declarations.
func (r *Registry) Declarations() []Declaration {
	return append([]Declaration(nil), r.decls...)
}

// Resolve maps a logical name to a SourceFile. Explicit declarations are
// tried first, then the synthesized location under the base path, then the
// fallback declarations. It returns a *SourceNotFoundError when none of
// them exists.
func (r *Registry) Resolve(logicalName string) (SourceFile, error) {
	name := NormalizeName(logicalName)
	if name == "" || name == "." {
		return SourceFile{}, &SourceNotFoundError{Requested: logicalName}
	}

	if d, ok := lookup(r.decls, name); ok {
		return r.resolveDeclared(d, logicalName, name)
	}

	loc := r.defaultLocation(name)
	if r.files.Exists(loc) {
		r.logger.Debug("Resolved source by default location.", "name", name, "path", loc)
		return SourceFile{LogicalName: name, Location: loc}, nil
	}

	if d, ok := lookup(r.fallbacks, name); ok {
		f, err := r.resolveDeclared(d, logicalName, name)
		if err == nil {
			return f, nil
		}
	}
	return SourceFile{}, &SourceNotFoundError{Requested: logicalName, Candidates: []string{loc}}
}

func (r *Registry) resolveDeclared(d Declaration, logicalName, name string) (SourceFile, error) {
	if d.Embedded {
		r.logger.Debug("Resolved embedded source.", "name", name, "resource", d.Location)
		return SourceFile{LogicalName: d.Name, Location: d.Location, Embedded: true}, nil
	}
	if r.files.Exists(d.Location) {
		r.logger.Debug("Resolved declared source.", "name", name, "path", d.Location)
		return SourceFile{LogicalName: d.Name, Location: d.Location}, nil
	}
	fallback := filepath.Join(r.basePath, d.Location)
	if r.files.Exists(fallback) {
		r.logger.Debug("Resolved declared source under base path.", "name", name, "path", fallback)
		return SourceFile{LogicalName: d.Name, Location: fallback}, nil
	}
	return SourceFile{}, &SourceNotFoundError{Requested: logicalName, Candidates: []string{d.Location, fallback}}
}

// Read returns the text of a resolved source. A missing or empty source, or
// an embedded source without a container, yields a *SourceUnavailableError.
func (r *Registry) Read(f SourceFile) (string, error) {
	p := r.files
	if f.Embedded {
		p = r.embedded
		if p == nil {
			return "", &SourceUnavailableError{File: f, Err: ErrNoContainer}
		}
	}

	data, err := p.Read(f.Location)
	if err != nil {
		return "", &SourceUnavailableError{File: f, Err: err}
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(data) == 0 {
		return "", &SourceUnavailableError{File: f, Err: ErrEmptySource}
	}
	return string(data), nil
}

// lookup finds a declaration matching name as a whole, then by base name.
func lookup(decls []Declaration, name string) (Declaration, bool) {
	for _, d := range decls {
		if strings.EqualFold(NormalizeName(d.Name), name) {
			return d, true
		}
	}
	base := path.Base(name)
	if base == name {
		return Declaration{}, false
	}
	for _, d := range decls {
		if strings.EqualFold(NormalizeName(d.Name), base) {
			return d, true
		}
	}
	return Declaration{}, false
}

func (r *Registry) defaultLocation(name string) string {
	dir, base := path.Split(name)
	loc := filepath.Join(r.basePath, filepath.FromSlash(dir), base)
	if r.extension != "" {
		loc += "." + r.extension
	}
	return loc
}

// NormalizeName converts a logical name to its slash-separated, unrooted,
// trimmed form.
func NormalizeName(name string) string {
	name = strings.TrimSpace(filepath.ToSlash(name))
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return ""
	}
	return path.Clean(name)
}
