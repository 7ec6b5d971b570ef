// Package definition provides the keyed catalogs that hold load-once content
// definitions (tile types, motifs, custom steps, map definitions).
package definition

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every NotFoundError
var ErrNotFound = errors.New("definition not found")

// NotFoundError reports a lookup of an unregistered name
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s definition %q not found", e.Kind, e.Name)
}

// Is lets errors.Is(err, ErrNotFound) match
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Registry maps names to shared definitions
type Registry[D any] struct {
	kind  string
	defs  map[string]D
	order []string
}

// NewRegistry creates an empty registry. kind is used in error messages.
func NewRegistry[D any](kind string) *Registry[D] {
	return &Registry[D]{
		kind: kind,
		defs: make(map[string]D),
	}
}

// Kind returns the registry's kind label
func (r *Registry[D]) Kind() string {
	return r.kind
}

// Register adds a definition. Names are unique.
func (r *Registry[D]) Register(name string, def D) error {
	if name == "" {
		return fmt.Errorf("cannot register %s definition with empty name", r.kind)
	}
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("%s definition %q already registered", r.kind, name)
	}
	r.defs[name] = def
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the definition registered under name
func (r *Registry[D]) Lookup(name string) (D, error) {
	def, ok := r.defs[name]
	if !ok {
		var zero D
		return zero, &NotFoundError{Kind: r.kind, Name: name}
	}
	return def, nil
}

// Has reports whether name is registered
func (r *Registry[D]) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Names returns the registered names in registration order
func (r *Registry[D]) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of definitions
func (r *Registry[D]) Len() int {
	return len(r.defs)
}

// Remove drops a single definition
func (r *Registry[D]) Remove(name string) {
	if _, ok := r.defs[name]; !ok {
		return
	}
	delete(r.defs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Reset drops every definition
func (r *Registry[D]) Reset() {
	r.defs = make(map[string]D)
	r.order = nil
}
