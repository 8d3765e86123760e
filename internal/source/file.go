// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package source

import (
	"path"
	"path/filepath"
	"strings"
)

// SourceFile is a logical source identity. It is immutable once constructed.
type SourceFile struct {
	// LogicalName is the caller-facing name of the source.
	LogicalName string

	// Location is a file path, or a resource name inside the embedded container.
	Location string

	// Embedded is true when Location names a resource in the embedded container.
	Embedded bool
}

// Identity returns the canonical identity string used as the cache key.
// Embedded resources are keyed by their cleaned resource name and files by
// their absolute cleaned path, so two spellings of one file share an entry.
func (f SourceFile) Identity() string {
	if f.Embedded {
		return "embed:" + cleanResource(f.Location)
	}
	p := filepath.Clean(f.Location)
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return "file:" + p
}

// SameSource reports whether f and other denote the same logical source,
// regardless of which provider backs them.
func (f SourceFile) SameSource(other SourceFile) bool {
	return strings.EqualFold(f.LogicalName, other.LogicalName)
}

// String returns the physical location, which is what diagnostics show.
func (f SourceFile) String() string {
	return f.Location
}

// Declaration is an explicit source declaration supplied by the caller.
type Declaration struct {
	Name     string
	Location string
	Embedded bool
}

// NewDeclaration builds a Declaration, deriving the name from the location
// when name is empty. File declarations take the file name without its
// extension; embedded declarations take the resource name without the
// given default extension.
func NewDeclaration(location, name string, embedded bool, extension string) Declaration {
	if name == "" {
		name = DefaultName(location, embedded, extension)
	}
	return Declaration{Name: name, Location: location, Embedded: embedded}
}

// DefaultName derives a logical name from a location.
func DefaultName(location string, embedded bool, extension string) string {
	if embedded {
		ext := "." + strings.TrimPrefix(extension, ".")
		if extension != "" && strings.HasSuffix(strings.ToLower(location), strings.ToLower(ext)) {
			return location[:len(location)-len(ext)]
		}
		return location
	}
	base := filepath.Base(location)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// cleanResource normalizes a resource name to the slash-separated, unrooted
// form that fs.FS expects.
func cleanResource(name string) string {
	name = strings.TrimLeft(filepath.ToSlash(name), "/")
	if name == "" {
		return "."
	}
	return path.Clean(name)
}
