// Package trace provides the generic record type that flows through
// tracesplit, together with the structural helpers every transform needs.
//
// # Traces
//
// A [Trace] is one plot series: an arbitrarily nested JSON-shaped map whose
// fields include scalars ("name", "type"), objects ("marker") and parallel
// arrays ("x", "y", "marker.color"). The package does not know which fields
// are array-valued; that is declared per trace type in package schema.
//
// # Paths
//
// A [Path] addresses a nested field by an ordered list of map keys and slice
// indices. Paths are parsed from the usual dotted/bracketed notation:
//
//	p := trace.MustParsePath("transforms[0].groups")
//	groups, ok := trace.Get(t, p)
//
// [Set] creates missing intermediate objects and arrays on the way down.
//
// # Copying and Merging
//
// [Clone] deep-copies any JSON-shaped value so outputs never alias inputs.
// [ExtendDeep] overlays one object onto another: nested objects merge key by
// key, arrays merge index by index and scalars replace what was there.
package trace
