// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package compose

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCyclicInclude matches every *CyclicIncludeError.
	ErrCyclicInclude = errors.New("cyclic include")

	// ErrInvalidInclude matches every *InvalidIncludeError.
	ErrInvalidInclude = errors.New("invalid include")
)

// Error wraps any failure of a composition with the key that was requested
// and the chain of includes that led to the failing request.
type Error struct {
	Key   string
	Chain []string
	Err   error
}

func (e *Error) Error() string {
	if len(e.Chain) <= 1 {
		return fmt.Sprintf("compose %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("compose %s (via %s): %v", e.Key, strings.Join(e.Chain, " -> "), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CyclicIncludeError reports an include of a section that is still being
// expanded. Chain lists the section keys from the first occurrence of the
// repeated section down to the include that closed the cycle.
type CyclicIncludeError struct {
	Chain []string
}

func (e *CyclicIncludeError) Error() string {
	return fmt.Sprintf("cyclic include: %s", strings.Join(e.Chain, " -> "))
}

func (e *CyclicIncludeError) Is(target error) bool {
	return target == ErrCyclicInclude
}

// InvalidIncludeError reports an include directive that names no usable key.
type InvalidIncludeError struct {
	Effect string
	Line   int
	Text   string
	Err    error
}

func (e *InvalidIncludeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid include at %s:%d %q: %v", e.Effect, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("invalid include at %s:%d %q", e.Effect, e.Line, e.Text)
}

func (e *InvalidIncludeError) Unwrap() error {
	return e.Err
}

func (e *InvalidIncludeError) Is(target error) bool {
	return target == ErrInvalidInclude
}
