// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package source

import (
	"io/fs"
	"os"
)

// Provider is the byte-read capability behind a Registry. Read must return an
// error satisfying errors.Is(err, fs.ErrNotExist) for absent locations.
type Provider interface {
	Read(location string) ([]byte, error)
	Exists(location string) bool
}

// OSProvider reads sources from the local file system.
type OSProvider struct{}

func (OSProvider) Read(location string) ([]byte, error) {
	return os.ReadFile(location)
}

func (OSProvider) Exists(location string) bool {
	info, err := os.Stat(location)
	return err == nil && !info.IsDir()
}

// FSProvider reads sources from an fs.FS, typically an embed.FS holding
// resources compiled into the binary.
type FSProvider struct {
	FS fs.FS
}

func (p FSProvider) Read(location string) ([]byte, error) {
	return fs.ReadFile(p.FS, cleanResource(location))
}

func (p FSProvider) Exists(location string) bool {
	info, err := fs.Stat(p.FS, cleanResource(location))
	return err == nil && !info.IsDir()
}
