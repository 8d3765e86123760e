// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceNotFound matches every *SourceNotFoundError.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSourceUnavailable matches every *SourceUnavailableError.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrEmptySource is the cause recorded when a source resolves but holds no text.
	ErrEmptySource = errors.New("source is empty")

	// ErrNoContainer is the cause recorded when an embedded source is read but the
	// registry has no embedded container configured.
	ErrNoContainer = errors.New("no embedded resource container configured")
)

// SourceNotFoundError reports a logical name that resolved to nothing.
type SourceNotFoundError struct {
	Requested  string
	Candidates []string
}

func (e *SourceNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("source not found: %q", e.Requested)
	}
	return fmt.Sprintf("source not found: %q (tried %s)", e.Requested, strings.Join(e.Candidates, ", "))
}

func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}

// SourceUnavailableError reports a resolved source whose text could not be read.
type SourceUnavailableError struct {
	File SourceFile
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	kind := "file"
	if e.File.Embedded {
		kind = "embedded resource"
	}
	return fmt.Sprintf("source %q unavailable (%s %q): %v", e.File.LogicalName, kind, e.File.Location, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
