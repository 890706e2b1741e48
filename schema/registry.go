package schema

import (
	"fmt"
	"sync"

	"github.com/signadot/docstate/ir"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]*ir.Node)
)

// Register registers a schema which other schemas may reference by url.
func Register(url string, s *ir.Node) error {
	if s == nil {
		return fmt.Errorf("%w: cannot register nil schema", ErrSchema)
	}
	if url == "" {
		return fmt.Errorf("%w: schema must have a url", ErrSchema)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[url]; exists {
		return fmt.Errorf("%w: schema %q already registered", ErrSchema, url)
	}

	registry[url] = s
	return nil
}

// Lookup looks up a registered schema by url
func Lookup(url string) *ir.Node {
	mu.RLock()
	defer mu.RUnlock()
	return registry[url]
}

// All returns all registered schemas
func All() map[string]*ir.Node {
	mu.RLock()
	defer mu.RUnlock()

	result := make(map[string]*ir.Node, len(registry))
	for k, v := range registry {
		result[k] = v
	}
	return result
}
