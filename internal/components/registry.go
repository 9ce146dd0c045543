// Package components holds the closed registry of named presentational
// components referenceable from document bodies.
package components

import (
	"sort"
	"sync"

	apperrors "github.com/nathanjclark/www/internal/errors"
)

// Renderer is one named presentational component. Components take no
// parameters: each renders a single fixed artifact.
type Renderer interface {
	Name() string
	Render() string
}

// Registry stores named component renderers. It is populated exactly once at
// startup and frozen before any document resolution begins, so concurrent
// Resolve calls need no coordination.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Renderer
	frozen  bool
}

// NewRegistry constructs an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Renderer),
	}
}

// Register records a component renderer. Registering a name twice, or
// registering after Freeze, is a fatal error.
func (r *Registry) Register(renderer Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return apperrors.New(apperrors.CategoryComponent, apperrors.SeverityFatal,
			"registry is frozen, no runtime registration")
	}
	name := renderer.Name()
	if _, exists := r.entries[name]; exists {
		return apperrors.DuplicateComponent(name)
	}
	r.entries[name] = renderer
	return nil
}

// Freeze marks the registry immutable. Called once after startup population.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Resolve looks up a component by name. The slug identifies the referencing
// document in the returned error on a miss.
func (r *Registry) Resolve(slug, name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.entries[name]
	if !ok {
		return nil, apperrors.UnknownComponent(slug, name)
	}
	return renderer, nil
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
