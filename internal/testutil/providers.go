package testutil

import (
	"io/fs"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MapProvider is an in-memory source provider keyed by slash-separated location.
type MapProvider struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewMapProvider returns a MapProvider holding a copy of files.
func NewMapProvider(files map[string]string) *MapProvider {
	p := &MapProvider{files: make(map[string]string, len(files))}
	for k, v := range files {
		p.files[clean(k)] = v
	}
	return p
}

// Set adds or replaces a file.
func (p *MapProvider) Set(location, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[clean(location)] = text
}

func (p *MapProvider) Read(location string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	text, ok := p.files[clean(location)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: location, Err: fs.ErrNotExist}
	}
	return []byte(text), nil
}

func (p *MapProvider) Exists(location string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.files[clean(location)]
	return ok
}

func clean(location string) string {
	return path.Clean(strings.TrimLeft(strings.ReplaceAll(location, "\\", "/"), "/"))
}

// reader is the subset of a source provider that CountingProvider wraps.
type reader interface {
	Read(location string) ([]byte, error)
	Exists(location string) bool
}

// CountingProvider wraps a provider and counts Read calls. An optional delay
// widens the window in which concurrent loaders overlap.
type CountingProvider struct {
	Inner reader
	Delay time.Duration

	reads atomic.Int64
	mu    sync.Mutex
	per   map[string]int
}

// NewCountingProvider wraps inner.
func NewCountingProvider(inner reader) *CountingProvider {
	return &CountingProvider{Inner: inner, per: make(map[string]int)}
}

func (p *CountingProvider) Read(location string) ([]byte, error) {
	p.reads.Add(1)
	p.mu.Lock()
	p.per[clean(location)]++
	p.mu.Unlock()
	if p.Delay > 0 {
		time.Sleep(p.Delay)
	}
	return p.Inner.Read(location)
}

func (p *CountingProvider) Exists(location string) bool {
	return p.Inner.Exists(location)
}

// Reads returns the total number of Read calls.
func (p *CountingProvider) Reads() int {
	return int(p.reads.Load())
}

// ReadsOf returns the number of Read calls for one location.
func (p *CountingProvider) ReadsOf(location string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.per[clean(location)]
}
