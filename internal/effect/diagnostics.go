// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package effect

import (
	"errors"
	"fmt"
)

// WarningKind classifies a non-fatal diagnostic.
type WarningKind string

const (
	// DuplicateSectionKey is recorded when a section key is declared twice in one effect.
	DuplicateSectionKey WarningKind = "duplicate_section_key"

	// DuplicateInclude is recorded when a composition requests an already expanded section.
	DuplicateInclude WarningKind = "duplicate_include"
)

// Warning is a non-fatal diagnostic produced while parsing or composing.
type Warning struct {
	Kind    WarningKind
	Effect  string
	Key     string
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// ErrSectionNotFound matches every *SectionNotFoundError.
var ErrSectionNotFound = errors.New("section not found")

// SectionNotFoundError reports a shader key that matched no section of an effect.
type SectionNotFoundError struct {
	Effect string
	Key    string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("no section of %s matches key %q", e.Effect, e.Key)
}

func (e *SectionNotFoundError) Is(target error) bool {
	return target == ErrSectionNotFound
}
