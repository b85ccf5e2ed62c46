package transform

import (
	"github.com/matzehuels/tracesplit/pkg/schema"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

// Module is a transform type.
type Module interface {
	// Name is the value of "type" that selects this module.
	Name() string

	// Attributes declares the options the module accepts. Per-point
	// attributes (data arrays) are discovered on traces that carry the
	// transform, so they are split along with the trace's own arrays.
	Attributes() schema.Attributes

	// SupplyDefaults resolves raw options into their defaulted form. It
	// never fails: invalid values fall back to their defaults.
	SupplyDefaults(in map[string]any) map[string]any

	// Transform maps the input traces to output traces. An inactive
	// state.Transform returns data unchanged.
	Transform(data []trace.Trace, state State) ([]trace.Trace, error)
}

// State is the context a transform is applied in.
type State struct {
	// Transform holds the resolved options of the entry being applied.
	Transform map[string]any

	// FullTrace is the resolved trace the entry is attached to.
	FullTrace trace.Trace

	// FullData is every resolved trace of the figure.
	FullData []trace.Trace

	// TransformIndex is the position of the entry in the trace's
	// "transforms" array.
	TransformIndex int

	// AttributeSets optionally supplies, per input trace, the attribute set
	// to read raw options from. When nil the input traces are used.
	AttributeSets []map[string]any

	// Finder discovers per-point attributes. Modules fall back to the
	// built-in trace type declarations when it is nil.
	Finder schema.ArrayFinder
}

// Active reports whether resolved options enable a transform. Options
// without an "active" key are active.
func Active(opts map[string]any) bool {
	v, ok := opts["active"]
	if !ok {
		return true
	}
	b, isBool := v.(bool)
	return !isBool || b
}
