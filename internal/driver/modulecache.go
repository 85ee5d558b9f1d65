package driver

import (
	"sync"

	"tcab/internal/project"
	"tcab/internal/token"
)

// minimal per-process cache by module path + cache key
type cached struct {
	key    project.Digest
	tokens token.Stream
}

// ModuleCache keeps preprocessed module streams in memory. Streams are never
// mutated after Put, so they can be shared between compilations.
type ModuleCache struct {
	mu    sync.RWMutex
	byMod map[string]cached // key: module path ("./lib/a.tcab")
}

// NewModuleCache creates a ModuleCache with the given capacity hint.
func NewModuleCache(capHint int) *ModuleCache {
	return &ModuleCache{byMod: make(map[string]cached, capHint)}
}

// Get returns the stream stored for path when it was stored under key.
func (c *ModuleCache) Get(path string, key project.Digest) (token.Stream, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	rec, ok := c.byMod[path]
	c.mu.RUnlock()
	if !ok || rec.key != key {
		return nil, false
	}
	return rec.tokens, true
}

// Put stores a stream for path under key.
func (c *ModuleCache) Put(path string, key project.Digest, ts token.Stream) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.byMod[path] = cached{key: key, tokens: ts}
	c.mu.Unlock()
}

// Len reports the number of cached modules.
func (c *ModuleCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byMod)
}
