// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package compose assembles a single compilation unit from effect sections.
//
// A composition starts from one shader key, resolves it to a section and
// copies the section body into the output. Lines starting with
//
//	#include <key>
//
// are replaced by the composition of the named section, resolved relative to
// the directory of the including source. Line directives of the form
//
//	#line <line> <file index>
//
// are inserted at the start of every section and after every include so that
// compiler diagnostics against the composed text point back at the original
// effect file and line. "#version" lines never receive a directive because
// they must stay the first statement of the unit.
//
// Each section is expanded at most once per composition. A repeated include
// contributes nothing and is reported as a warning; an include that reaches a
// section still being expanded fails with a CyclicIncludeError.
package compose
