// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package compose

import (
	"github.com/specialistvlad/effectc/internal/effect"
	"github.com/specialistvlad/effectc/internal/shaderkey"
	"github.com/specialistvlad/effectc/internal/source"
)

// Result is the outcome of one successful composition.
type Result struct {
	// Key is the root request.
	Key shaderkey.Key

	// ComposeID correlates the log lines of this composition.
	ComposeID string

	// Source is the composed text, ready for compilation.
	Source string

	// Files maps a file index used in line directives to the source it came
	// from. Each expanded section takes the next index, so a file contributing
	// two sections appears twice.
	Files []source.SourceFile

	// Sections lists the expanded sections in the same order as Files.
	Sections []effect.ID

	// Warnings holds the duplicate-include diagnostics of this composition.
	Warnings []effect.Warning
}

// File returns the source behind a file index reported by a compiler.
func (r *Result) File(index int) (source.SourceFile, bool) {
	if index < 0 || index >= len(r.Files) {
		return source.SourceFile{}, false
	}
	return r.Files[index], true
}

// Effects returns the distinct sources that contributed to the result, in
// the order they were first visited.
func (r *Result) Effects() []source.SourceFile {
	seen := make(map[string]struct{}, len(r.Files))
	var out []source.SourceFile
	for _, f := range r.Files {
		id := f.Identity()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, f)
	}
	return out
}
