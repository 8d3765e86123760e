package app

import (
	"errors"
	"fmt"
)

// Mode selects what App.Run does.
type Mode int

const (
	// ModeCompose composes every program of the manifest and every ad-hoc key.
	ModeCompose Mode = iota
	// ModeSections lists the sections of a single effect file.
	ModeSections
	// ModeDiag composes one key and maps a compiler log onto its files.
	ModeDiag
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Mode Mode

	ManifestPath string   // .hcl / .yaml file or directory
	Keys         []string // ad-hoc shader keys
	Program      string   // only compose this program
	OutDir       string   // empty writes to the output writer

	// Overrides for the manifest settings.
	BasePath  string
	Extension string

	SectionsFile string // ModeSections
	LogPath      string // ModeDiag, "-" or empty reads the input reader

	Watch       bool
	WorkerCount int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Mode {
	case ModeCompose:
		if cfg.ManifestPath == "" && len(cfg.Keys) == 0 {
			return nil, errors.New("either a manifest path or at least one --key is required")
		}
	case ModeSections:
		if cfg.SectionsFile == "" {
			return nil, errors.New("an effect file is required")
		}
	case ModeDiag:
		if len(cfg.Keys) != 1 {
			return nil, errors.New("exactly one shader key is required")
		}
	default:
		return nil, fmt.Errorf("unknown mode %d", cfg.Mode)
	}

	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.Watch && cfg.Mode != ModeCompose {
		return nil, errors.New("watch is only supported when composing")
	}
	return &cfg, nil
}
