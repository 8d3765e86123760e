// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package shaderkey

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidKey matches every error returned by Parse.
var ErrInvalidKey = errors.New("invalid shader key")

// Key is a parsed shader request.
type Key struct {
	// Source is the logical source name, including any directory component.
	Source string

	// Section is the section key looked up inside the source.
	Section string
}

// Parse splits raw into its logical source name and section key.
func Parse(raw string) (Key, error) {
	return ParseRelative(raw, "")
}

// ParseRelative parses raw and joins its source name onto dir, the directory
// of the request that contains it. A raw key starting with "/" ignores dir.
func ParseRelative(raw, dir string) (Key, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(raw, "\\", "/"))
	if trimmed == "" {
		return Key{}, fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	if strings.HasPrefix(trimmed, "/") {
		dir = ""
		trimmed = strings.TrimLeft(trimmed, "/")
	}

	keyDir, file := path.Split(trimmed)
	sep := strings.IndexByte(file, '.')
	switch {
	case sep < 0:
		return Key{}, fmt.Errorf("%w: %q has no section part", ErrInvalidKey, raw)
	case sep == 0:
		return Key{}, fmt.Errorf("%w: %q has no source name", ErrInvalidKey, raw)
	case sep == len(file)-1:
		return Key{}, fmt.Errorf("%w: %q has an empty section", ErrInvalidKey, raw)
	}

	name := path.Join(dir, keyDir, file[:sep])
	if name == "." || strings.HasPrefix(name, "../") || name == ".." {
		return Key{}, fmt.Errorf("%w: %q escapes the source root", ErrInvalidKey, raw)
	}
	return Key{Source: name, Section: file[sep+1:]}, nil
}

// Dir returns the directory component of the source name, or "" at the root.
func (k Key) Dir() string {
	d := path.Dir(k.Source)
	if d == "." {
		return ""
	}
	return d
}

// String returns the canonical "<source>.<section>" form.
func (k Key) String() string {
	return k.Source + "." + k.Section
}
