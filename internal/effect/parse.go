// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package effect

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/effectc/internal/source"
)

// SectionSeparator starts a new section when it opens a line.
const SectionSeparator = "--"

// Parse splits text into sections. It never fails: text without any
// separator yields an Effect with no sections.
//
// A repeated key replaces the earlier section's body and line numbers while
// keeping its position, and records a DuplicateSectionKey warning.
func Parse(text string, origin source.SourceFile) *Effect {
	e := &Effect{
		origin: origin,
		index:  make(map[string]int),
	}

	var (
		current *Section
		body    strings.Builder
	)
	finish := func() {
		if current != nil {
			current.Source = body.String()
		}
		body.Reset()
	}

	for i, line := range splitLines(text) {
		lineNumber := i + 1
		if !strings.HasPrefix(line, SectionSeparator) {
			if current != nil {
				body.WriteString(line)
				body.WriteByte('\n')
			}
			continue
		}

		finish()
		current = &Section{
			Effect:          e,
			Key:             strings.TrimSpace(line[len(SectionSeparator):]),
			Line:            lineNumber,
			FirstLineNumber: lineNumber + 1,
		}
		e.add(current)
	}
	finish()

	return e
}

func (e *Effect) add(s *Section) {
	if i, ok := e.index[s.Key]; ok {
		prev := e.sections[i]
		e.warnings = append(e.warnings, Warning{
			Kind:    DuplicateSectionKey,
			Effect:  e.Identity(),
			Key:     s.Key,
			Line:    s.Line,
			Message: fmt.Sprintf("section %q redeclared at line %d, replacing the one at line %d", s.Key, s.Line, prev.Line),
		})
		e.sections[i] = s
		return
	}
	e.index[s.Key] = len(e.sections)
	e.sections = append(e.sections, s)
}

// splitLines splits text into lines, accepting "\n" and "\r\n" terminators.
// A terminator at the very end does not produce an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
