package schema

import (
	"fmt"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

// SupplyTraceDefaults resolves every declared attribute of in against its
// trace type. index is the trace's position in its figure and only feeds the
// default name ("trace 0", "trace 1"...).
//
// Top-level fields the type does not declare (including "transforms") are
// carried over as deep copies so that transform configuration and
// caller-specific metadata survive resolution. It fails only when in names a
// trace type that is not registered.
func (r *Registry) SupplyTraceDefaults(in trace.Trace, index int) (trace.Trace, error) {
	typ := DefaultTraceType
	if v, ok := in["type"]; ok && v != nil {
		s, isString := v.(string)
		if !isString {
			return nil, errors.New(errors.ErrCodeUnknownTraceType, "trace %d: type must be a string, got %T", index, v)
		}
		typ = s
	}
	attrs, ok := r.TraceType(typ)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownTraceType, "trace %d: unknown trace type %q", index, typ)
	}

	out := trace.Trace{"type": typ}
	for _, name := range attrs.Names() {
		var dflt any
		if name == "name" {
			dflt = fmt.Sprintf("trace %d", index)
		}
		Coerce(in, out, attrs, name, dflt)
	}

	roots := attrs.Roots()
	for k, v := range in {
		if _, done := out[k]; done || roots[k] {
			continue
		}
		out[k] = trace.Clone(v)
	}
	return out, nil
}
