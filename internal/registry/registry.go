package registry

import (
	"fmt"
	"slices"
	"strings"
)

// ExportsAttr is the attribute that holds a namespace's export list.
const ExportsAttr = "exports"

// Namespace is a mutable, keyed container of named attributes.
type Namespace struct {
	key   string
	attrs map[string]any
}

// Key returns the namespace's unique key.
func (n *Namespace) Key() string {
	return n.key
}

// Get returns the attribute value and whether it is present.
func (n *Namespace) Get(attr string) (any, bool) {
	v, ok := n.attrs[attr]
	return v, ok
}

// Set stores an attribute, replacing any previous value.
func (n *Namespace) Set(attr string, v any) {
	n.attrs[attr] = v
}

// Delete removes an attribute. Deleting a missing attribute is a no-op.
func (n *Namespace) Delete(attr string) {
	delete(n.attrs, attr)
}

// Attrs returns the attribute names in sorted order.
func (n *Namespace) Attrs() []string {
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Registry maps namespace keys to namespaces.
type Registry struct {
	namespaces map[string]*Namespace
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{namespaces: make(map[string]*Namespace)}
}

// Register creates a namespace under key.
// Returns an error if key is blank or already registered.
func (r *Registry) Register(key string) (*Namespace, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("namespace key must not be empty")
	}
	if _, exists := r.namespaces[key]; exists {
		return nil, fmt.Errorf("namespace %q already registered", key)
	}

	ns := &Namespace{key: key, attrs: make(map[string]any)}
	r.namespaces[key] = ns
	return ns, nil
}

// MustRegister is like Register but panics on error.
// Use only in tests or package initialization with known-good keys.
func (r *Registry) MustRegister(key string) *Namespace {
	ns, err := r.Register(key)
	if err != nil {
		panic(err)
	}
	return ns
}

// Lookup returns the namespace registered under key.
func (r *Registry) Lookup(key string) (*Namespace, bool) {
	ns, ok := r.namespaces[key]
	return ns, ok
}

// Keys returns every registered key in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.namespaces))
	for key := range r.namespaces {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of registered namespaces.
func (r *Registry) Len() int {
	return len(r.namespaces)
}
