// Package registry stores named strategy implementations. Orderer and
// formatter registries are thin typed wrappers around Registry.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores values by name, providing discovery and duplication
// safeguards. It is safe for concurrent use.
type Registry[T any] struct {
	kind    string
	mu      sync.RWMutex
	entries map[string]T
}

// New creates an empty registry. kind prefixes error messages ("orderer",
// "formatter").
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:    kind,
		entries: make(map[string]T),
	}
}

// Register adds value under name. Names are trimmed and lower-cased;
// duplicates return an error.
func (r *Registry[T]) Register(name string, value T) error {
	key := normalize(name)
	if key == "" {
		return fmt.Errorf("%s: name is required", r.kind)
	}
	if any(value) == nil {
		return fmt.Errorf("%s: %q implementation is required", r.kind, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%s: %q already registered", r.kind, key)
	}
	r.entries[key] = value
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry[T]) MustRegister(name string, value T) {
	if err := r.Register(name, value); err != nil {
		panic(err)
	}
}

// Get retrieves a value by name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[normalize(name)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %q not found", r.kind, name)
	}
	return value, nil
}

// List returns the sorted registered names.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[normalize(name)]
	return ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
