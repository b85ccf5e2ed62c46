package schema

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

// DefaultTraceType is used for traces that do not set "type".
const DefaultTraceType = "scatter"

// ArrayFinder discovers the per-point array attributes of a trace.
type ArrayFinder interface {
	FindArrayAttributes(t trace.Trace) []trace.Path
}

// Registry holds the attribute declarations of trace types and transforms.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	traceTypes map[string]Attributes
	transforms map[string]Attributes
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		traceTypes: make(map[string]Attributes),
		transforms: make(map[string]Attributes),
	}
}

// NewBuiltinRegistry creates a registry with the built-in trace types
// (scatter, bar, histogram, box) registered.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for name, attrs := range builtinTraceTypes() {
		// builtin names are valid by construction
		_ = r.RegisterTraceType(name, attrs)
	}
	return r
}

// RegisterTraceType declares the attributes of a trace type. The common
// attributes shared by every trace (visible, name, opacity, ids...) are
// added automatically. Registering an existing name replaces it.
func (r *Registry) RegisterTraceType(name string, attrs Attributes) error {
	if err := errors.ValidateTypeName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.traceTypes[name] = baseAttributes().Merge(attrs)
	return nil
}

// RegisterTransform declares the attributes of a transform type so that its
// per-point attributes are discovered on traces that carry it.
func (r *Registry) RegisterTransform(name string, attrs Attributes) error {
	if err := errors.ValidateTypeName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transforms[name] = maps.Clone(attrs)
	return nil
}

// TraceType returns the declarations of a trace type.
func (r *Registry) TraceType(name string) (Attributes, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.traceTypes[name]
	return a, ok
}

// Transform returns the declarations of a transform type.
func (r *Registry) Transform(name string) (Attributes, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.transforms[name]
	return a, ok
}

// TraceTypes returns the registered trace type names in sorted order.
func (r *Registry) TraceTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.traceTypes))
}

// FindArrayAttributes returns the path of every per-point attribute of t
// that currently holds an array: first the trace type's own attributes in
// sorted order, then those of each transform entry under "transforms[i]".
// Traces of an unknown type only contribute their transforms' attributes.
func (r *Registry) FindArrayAttributes(t trace.Trace) []trace.Path {
	typ := t.Type()
	if typ == "" {
		typ = DefaultTraceType
	}

	var out []trace.Path
	if attrs, ok := r.TraceType(typ); ok {
		out = appendArrays(out, t, nil, attrs)
	}
	for i, tr := range t.Transforms() {
		name, _ := tr["type"].(string)
		if attrs, ok := r.Transform(name); ok {
			out = appendArrays(out, t, trace.Path{"transforms", i}, attrs)
		}
	}
	return out
}

func appendArrays(out []trace.Path, t trace.Trace, prefix trace.Path, attrs Attributes) []trace.Path {
	for _, name := range attrs.Names() {
		if !attrs[name].PerPoint() {
			continue
		}
		rel, err := trace.ParsePath(name)
		if err != nil {
			continue
		}
		p := prefix.Join(rel...)
		if v, ok := trace.Get(t, p); ok && trace.IsSequence(v) {
			out = append(out, p)
		}
	}
	return out
}

var _ ArrayFinder = (*Registry)(nil)

// StaticFinder reports a fixed list of paths, for traces with a known
// shape. Paths that are absent or not arrays on a given trace are skipped.
type StaticFinder []trace.Path

// FindArrayAttributes implements ArrayFinder.
func (f StaticFinder) FindArrayAttributes(t trace.Trace) []trace.Path {
	var out []trace.Path
	for _, p := range f {
		if v, ok := trace.Get(t, p); ok && trace.IsSequence(v) {
			out = append(out, p)
		}
	}
	return out
}
