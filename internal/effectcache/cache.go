// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package effectcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/effectc/internal/ctxlog"
	"github.com/specialistvlad/effectc/internal/effect"
	"github.com/specialistvlad/effectc/internal/source"
	"golang.org/x/sync/singleflight"
)

// Reader reads the text of a resolved source. *source.Registry implements it.
type Reader interface {
	Read(f source.SourceFile) (string, error)
}

// Cache maps source identities to parsed effects.
type Cache struct {
	reader Reader

	mu      sync.RWMutex
	effects map[string]*effect.Effect
	group   singleflight.Group
}

// New creates an empty cache reading sources through r.
func New(r Reader) *Cache {
	return &Cache{
		reader:  r,
		effects: make(map[string]*effect.Effect),
	}
}

// Load returns the effect parsed from f, reading and parsing it on first use.
// Every call for the same identity returns the same *effect.Effect.
func (c *Cache) Load(ctx context.Context, f source.SourceFile) (*effect.Effect, error) {
	id := f.Identity()
	if e, ok := c.Lookup(id); ok {
		return e, nil
	}

	v, err, shared := c.group.Do(id, func() (any, error) {
		// A loader that finished between our lookup and Do has already stored it.
		if e, ok := c.Lookup(id); ok {
			return e, nil
		}
		return c.load(ctx, f, id)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		ctxlog.FromContext(ctx).Debug("Reused in-flight effect load.", "identity", id)
	}
	return v.(*effect.Effect), nil
}

func (c *Cache) load(ctx context.Context, f source.SourceFile, id string) (*effect.Effect, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading effect.", "identity", id, "name", f.LogicalName)

	text, err := c.reader.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load effect %s: %w", id, err)
	}

	e := effect.Parse(text, f)
	for _, w := range e.Warnings() {
		logger.Warn("Effect parsed with warning.", "identity", id, "kind", w.Kind, "key", w.Key, "line", w.Line, "detail", w.Message)
	}

	c.mu.Lock()
	c.effects[id] = e
	c.mu.Unlock()

	logger.Debug("Effect cached.", "identity", id, "sections", len(e.Keys()))
	return e, nil
}

// Lookup returns a cached effect without loading it.
func (c *Cache) Lookup(identity string) (*effect.Effect, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.effects[identity]
	return e, ok
}

// Len returns the number of cached effects.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.effects)
}
