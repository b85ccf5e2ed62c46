// Package schema declares the attributes each trace type and transform
// accepts and coerces raw input against those declarations.
//
// # Attributes
//
// An [Attributes] map is keyed by property path ("x", "marker.color") and
// describes each attribute's value type and default. Two kinds of attribute
// can carry per-point data:
//
//   - [DataArray] attributes are always arrays ("x", "y", "ids").
//   - Attributes with ArrayOk set accept either a scalar or an array
//     ("marker.color" may be "red" or one color per point).
//
// # Coercion
//
// [Coerce] copies one attribute from a raw input object into a resolved
// output object. Values that are absent or of the wrong shape are replaced
// by the default; coercion never fails.
//
// # Array Discovery
//
// [Registry.FindArrayAttributes] returns the paths of every attribute of a
// trace that currently holds an array, including the array attributes of
// the trace's own transforms (under "transforms[i]."). Transforms that
// redistribute per-point data use it to find every parallel array without
// hard-coding field names.
package schema
