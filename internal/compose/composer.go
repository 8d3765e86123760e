// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/effectc/internal/ctxlog"
	"github.com/specialistvlad/effectc/internal/effect"
	"github.com/specialistvlad/effectc/internal/shaderkey"
	"github.com/specialistvlad/effectc/internal/source"
)

const (
	// IncludeDirective starts a line naming a nested section.
	IncludeDirective = "#include"

	// VersionDirective starts a line that must never be preceded by a line directive.
	VersionDirective = "#version"
)

// Resolver maps logical source names to sources. *source.Registry implements it.
type Resolver interface {
	Resolve(logicalName string) (source.SourceFile, error)
}

// Loader returns parsed effects. *effectcache.Cache implements it.
type Loader interface {
	Load(ctx context.Context, f source.SourceFile) (*effect.Effect, error)
}

// Composer expands shader keys into composed sources. It holds no per-call
// state and is safe for concurrent use.
type Composer struct {
	resolver Resolver
	loader   Loader
}

// New creates a Composer.
func New(resolver Resolver, loader Loader) *Composer {
	return &Composer{resolver: resolver, loader: loader}
}

// LineDirective returns the line-correction marker for a line of a file index.
func LineDirective(line, fileIndex int) string {
	return fmt.Sprintf("#line %d %d", line, fileIndex)
}

// Compose parses raw as a shader key and composes it.
func (c *Composer) Compose(ctx context.Context, raw string) (*Result, error) {
	key, err := shaderkey.Parse(raw)
	if err != nil {
		return nil, &Error{Key: raw, Err: err}
	}
	return c.ComposeKey(ctx, key)
}

// ComposeKey composes the section selected by key together with everything it
// includes. Any failure aborts the whole composition.
func (c *Composer) ComposeKey(ctx context.Context, key shaderkey.Key) (*Result, error) {
	id := uuid.NewString()
	ctx = ctxlog.With(ctx, "compose_id", id)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Composing shader source.", "key", key.String())

	x := &expansion{
		ctx:      ctx,
		c:        c,
		included: make(map[effect.ID]bool),
	}

	var out strings.Builder
	if err := x.expand(key, &out); err != nil {
		logger.Debug("Composition failed.", "key", key.String(), "error", err)
		return nil, &Error{Key: key.String(), Chain: x.failChain, Err: err}
	}

	logger.Debug("Composition finished.", "key", key.String(), "sections", len(x.files), "bytes", out.Len())
	return &Result{
		Key:       key,
		ComposeID: id,
		Source:    out.String(),
		Files:     x.files,
		Sections:  x.sections,
		Warnings:  x.warnings,
	}, nil
}

// expansion is the state of one top-level composition.
type expansion struct {
	ctx context.Context
	c   *Composer

	// included holds every registered section; the value is true while the
	// section is still being expanded.
	included map[effect.ID]bool
	active   []frame
	stack    []string

	files     []source.SourceFile
	sections  []effect.ID
	warnings  []effect.Warning
	failChain []string
}

// frame is a section whose expansion has started but not finished.
type frame struct {
	id  effect.ID
	key string
}

func (x *expansion) fail(err error) error {
	if x.failChain == nil {
		x.failChain = append([]string(nil), x.stack...)
	}
	return err
}

func (x *expansion) expand(key shaderkey.Key, out *strings.Builder) error {
	logger := ctxlog.FromContext(x.ctx)

	x.stack = append(x.stack, key.String())
	defer func() { x.stack = x.stack[:len(x.stack)-1] }()

	sf, err := x.c.resolver.Resolve(key.Source)
	if err != nil {
		return x.fail(err)
	}
	e, err := x.c.loader.Load(x.ctx, sf)
	if err != nil {
		return x.fail(err)
	}
	section := e.FindBest(key.Section)
	if section == nil {
		return x.fail(&effect.SectionNotFoundError{Effect: e.Identity(), Key: key.Section})
	}

	id := section.ID()
	if active, seen := x.included[id]; seen {
		if active {
			return x.fail(&CyclicIncludeError{Chain: x.cycleFrom(id, key)})
		}
		w := effect.Warning{
			Kind:    effect.DuplicateInclude,
			Effect:  id.Effect,
			Key:     section.Key,
			Message: fmt.Sprintf("section %q of %s already included, skipping %s", section.Key, sf.Location, key.String()),
		}
		x.warnings = append(x.warnings, w)
		logger.Warn("Shader section already included.", "key", key.String(), "section", section.Key, "effect", id.Effect)
		return nil
	}

	fileIndex := len(x.files)
	x.included[id] = true
	x.files = append(x.files, sf)
	x.sections = append(x.sections, id)
	x.active = append(x.active, frame{id: id, key: key.String()})
	logger.Debug("Expanding section.", "key", key.String(), "section", section.Key, "file_index", fileIndex, "path", sf.Location)

	lineNumber := section.FirstLineNumber
	fixLine := true
	for _, line := range section.Lines() {
		target, isInclude, err := parseInclude(line)
		switch {
		case err != nil:
			return x.fail(&InvalidIncludeError{Effect: sf.Location, Line: lineNumber, Text: line, Err: err})
		case isInclude:
			nested, err := shaderkey.ParseRelative(target, key.Dir())
			if err != nil {
				return x.fail(&InvalidIncludeError{Effect: sf.Location, Line: lineNumber, Text: line, Err: err})
			}
			if err := x.expand(nested, out); err != nil {
				return err
			}
			fixLine = true
		default:
			if fixLine && !strings.HasPrefix(line, VersionDirective) {
				out.WriteString(LineDirective(lineNumber, fileIndex))
				out.WriteByte('\n')
				fixLine = false
			}
			out.WriteString(line)
			out.WriteByte('\n')
		}
		lineNumber++
	}

	x.active = x.active[:len(x.active)-1]
	x.included[id] = false
	return nil
}

// cycleFrom returns the keys of the active expansions starting at the one
// that registered id, followed by the request closing the cycle.
func (x *expansion) cycleFrom(id effect.ID, key shaderkey.Key) []string {
	for i, f := range x.active {
		if f.id != id {
			continue
		}
		chain := make([]string, 0, len(x.active)-i+1)
		for _, g := range x.active[i:] {
			chain = append(chain, g.key)
		}
		return append(chain, key.String())
	}
	return []string{key.String()}
}

// parseInclude reports whether line is an include directive and returns its
// target with surrounding quotes or angle brackets removed.
func parseInclude(line string) (string, bool, error) {
	if !strings.HasPrefix(line, IncludeDirective) {
		return "", false, nil
	}
	rest := line[len(IncludeDirective):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// "#includes" and friends are ordinary text.
		return "", false, nil
	}
	target := strings.TrimSpace(rest)
	if n := len(target); n >= 2 && (target[0] == '"' && target[n-1] == '"' || target[0] == '<' && target[n-1] == '>') {
		target = strings.TrimSpace(target[1 : n-1])
	}
	if target == "" {
		return "", true, errors.New("missing key")
	}
	return target, true, nil
}
