// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package effect

import (
	"strings"

	"github.com/specialistvlad/effectc/internal/source"
)

// Effect is a parsed effect document. It is never mutated after Parse returns.
type Effect struct {
	origin   source.SourceFile
	sections []*Section
	index    map[string]int
	warnings []Warning
}

// Section is a named, line-anchored body of text within an Effect.
type Section struct {
	// Effect is a non-owning back reference to the effect holding this section.
	Effect *Effect

	// Key is the trimmed text following the separator.
	Key string

	// Source is the verbatim body, every line terminated by "\n".
	Source string

	// Line is the line number of the separator itself.
	Line int

	// FirstLineNumber is the line number of the first body line.
	FirstLineNumber int
}

// ID is the identity of a section for de-duplication purposes.
type ID struct {
	Effect string
	Key    string
}

// ID returns the (effect identity, key) pair identifying s.
func (s *Section) ID() ID {
	return ID{Effect: s.Effect.Identity(), Key: s.Key}
}

// Lines returns the body split into lines, without terminators.
func (s *Section) Lines() []string {
	if s.Source == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s.Source, "\n"), "\n")
}

// Identity returns the canonical identity of the effect's origin.
func (e *Effect) Identity() string {
	return e.origin.Identity()
}

// Origin returns the source the effect was parsed from.
func (e *Effect) Origin() source.SourceFile {
	return e.origin
}

// Sections returns the sections in declaration order.
func (e *Effect) Sections() []*Section {
	return append([]*Section(nil), e.sections...)
}

// Keys returns the section keys in declaration order.
func (e *Effect) Keys() []string {
	keys := make([]string, len(e.sections))
	for i, s := range e.sections {
		keys[i] = s.Key
	}
	return keys
}

// Section returns the section with exactly the given key.
func (e *Effect) Section(key string) (*Section, bool) {
	i, ok := e.index[key]
	if !ok {
		return nil, false
	}
	return e.sections[i], true
}

// Warnings returns the diagnostics recorded while parsing.
func (e *Effect) Warnings() []Warning {
	return append([]Warning(nil), e.warnings...)
}

// FindBest returns the section whose key is the longest case-insensitive
// prefix of key, or nil when no section key is a prefix of it. When two keys
// of equal length match (they can only differ in case) the one declared
// first wins.
func (e *Effect) FindBest(key string) *Section {
	folded := strings.ToLower(key)
	var best *Section
	for _, s := range e.sections {
		if !strings.HasPrefix(folded, strings.ToLower(s.Key)) {
			continue
		}
		if best == nil || len(s.Key) > len(best.Key) {
			best = s
		}
	}
	return best
}
