package transform

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/schema"
)

// Registry maps transform type names to modules. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates a registry holding mods. It panics if two modules
// share a name.
func NewRegistry(mods ...Module) *Registry {
	r := &Registry{modules: make(map[string]Module, len(mods))}
	for _, m := range mods {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds m. Names must be valid type names and unique.
func (r *Registry) Register(m Module) error {
	name := m.Name()
	if err := errors.ValidateTypeName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.modules[name]; dup {
		return errors.New(errors.ErrCodeInvalidInput, "transform %q already registered", name)
	}
	r.modules[name] = m
	return nil
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (Module, error) {
	r.mu.RLock()
	m, ok := r.modules[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownTransform, "unknown transform %q", name)
	}
	return m, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.modules))
}

// DeclareAttributes registers the attributes of every module with s, so that
// s discovers the per-point attributes of attached transforms.
func (r *Registry) DeclareAttributes(s *schema.Registry) error {
	for _, name := range r.Names() {
		m, _ := r.Lookup(name)
		if err := s.RegisterTransform(name, m.Attributes()); err != nil {
			return err
		}
	}
	return nil
}
