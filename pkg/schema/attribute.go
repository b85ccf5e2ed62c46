package schema

import (
	"maps"
	"slices"

	"github.com/matzehuels/tracesplit/pkg/trace"
)

// ValType names the kind of value an attribute accepts.
type ValType string

const (
	Boolean    ValType = "boolean"
	Number     ValType = "number"
	Integer    ValType = "integer"
	String     ValType = "string"
	Enumerated ValType = "enumerated"
	Color      ValType = "color"
	DataArray  ValType = "data_array"
	Any        ValType = "any"
)

// Attribute declares one attribute of a trace type or transform.
type Attribute struct {
	ValType     ValType
	Dflt        any
	ArrayOk     bool     // scalar or one value per point
	Values      []any    // allowed values for Enumerated
	Min, Max    *float64 // inclusive bounds for Number and Integer
	Description string
}

// PerPoint reports whether the attribute can hold one value per data point.
func (a Attribute) PerPoint() bool {
	return a.ValType == DataArray || a.ArrayOk
}

// Attributes maps property paths to their declarations.
type Attributes map[string]Attribute

// Names returns the declared paths in sorted order.
func (a Attributes) Names() []string {
	return slices.Sorted(maps.Keys(a))
}

// Roots returns the set of top-level keys the declarations cover.
func (a Attributes) Roots() map[string]bool {
	roots := make(map[string]bool, len(a))
	for name := range a {
		if p, err := trace.ParsePath(name); err == nil {
			if k, ok := p[0].(string); ok {
				roots[k] = true
			}
		}
	}
	return roots
}

// Merge returns a new Attributes with the declarations of others layered
// over a. Later declarations win.
func (a Attributes) Merge(others ...Attributes) Attributes {
	out := maps.Clone(a)
	if out == nil {
		out = make(Attributes)
	}
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Float returns a pointer to f, for Min and Max.
func Float(f float64) *float64 { return &f }
