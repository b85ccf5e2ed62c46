package groupby

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/matzehuels/tracesplit/pkg/schema"
	"github.com/matzehuels/tracesplit/pkg/trace"
	"github.com/matzehuels/tracesplit/pkg/transform"
)

// Module is the groupby transform.
type Module struct{}

var _ transform.Module = Module{}

// Name implements transform.Module.
func (Module) Name() string { return Name }

// Attributes implements transform.Module.
func (Module) Attributes() schema.Attributes { return attributes() }

// SupplyDefaults implements transform.Module.
func (Module) SupplyDefaults(in map[string]any) map[string]any { return SupplyDefaults(in) }

// Transform splits every trace of data and concatenates the results. When
// state.Transform is inactive data is returned as it is.
//
// The group assignment is read from each trace's own transform entry at
// state.TransformIndex (or from state.AttributeSets[i] when supplied), not
// from state.Transform: after an earlier split the entry carries only the
// labels of its own group. state.Transform["groups"] is used only when the
// trace carries no entry at that index. The style overlay always comes from
// state.Transform.
func (Module) Transform(data []trace.Trace, state transform.State) ([]trace.Trace, error) {
	if !transform.Active(state.Transform) {
		return data, nil
	}
	style, _ := trace.AsMap(state.Transform["style"])

	var out []trace.Trace
	for i, t := range data {
		src := map[string]any(t)
		if i < len(state.AttributeSets) && state.AttributeSets[i] != nil {
			src = state.AttributeSets[i]
		}
		groups, ok := trace.ToSlice(assignment(src, state))
		if !ok {
			out = append(out, t)
			continue
		}
		split, err := Split(t, groups, style, state.Finder)
		if err != nil {
			return nil, fmt.Errorf("trace %d: %w", i, err)
		}
		out = append(out, split...)
	}
	return out, nil
}

func assignment(src map[string]any, state transform.State) any {
	entries := trace.Trace(src).Transforms()
	if i := state.TransformIndex; i >= 0 && i < len(entries) && entries[i] != nil {
		return entries[i]["groups"]
	}
	return state.Transform["groups"]
}

// Split partitions t by groups. It returns one trace per distinct label, in
// order of first appearance; an empty groups returns t itself.
//
// Every per-point attribute reported by finder is reduced to the elements at
// the label's positions, in their original order. Positions past the end of
// a shorter attribute are skipped. The output's "name" is the label's
// display form (see [Label]) and style[Label(label)] is deep-merged over it
// when it is an object. t is not modified. A nil finder uses the built-in
// trace type declarations.
func Split(t trace.Trace, groups []any, style map[string]any, finder schema.ArrayFinder) ([]trace.Trace, error) {
	if len(groups) == 0 {
		return []trace.Trace{t}, nil
	}
	if finder == nil {
		finder = defaultFinder()
	}

	var (
		keys    []string
		labels  = make(map[string]any)
		indices = make(map[string][]int)
	)
	for j, g := range groups {
		k := groupKey(g)
		if _, seen := indices[k]; !seen {
			keys = append(keys, k)
			labels[k] = g
		}
		indices[k] = append(indices[k], j)
	}

	arrays := finder.FindArrayAttributes(t)
	sources := make([]any, len(arrays))
	for a, p := range arrays {
		sources[a], _ = trace.Get(t, p)
	}

	out := make([]trace.Trace, 0, len(keys))
	for _, k := range keys {
		nt := t.Clone()
		for a, p := range arrays {
			vals := make([]any, 0, len(indices[k]))
			for _, j := range indices[k] {
				if v, ok := trace.At(sources[a], j); ok {
					vals = append(vals, trace.Clone(v))
				}
			}
			if err := trace.Set(nt, p, vals); err != nil {
				return nil, fmt.Errorf("group %s: %w", Label(labels[k]), err)
			}
		}

		name := Label(labels[k])
		nt["name"] = name
		if overlay, ok := trace.AsMap(style[name]); ok {
			nt = trace.ExtendDeep(nt, overlay)
		}
		out = append(out, nt)
	}
	return out, nil
}

// Label returns the display form of a group label: strings as they are,
// numbers in their shortest decimal form, booleans as "true"/"false" and
// nil as "null".
func Label(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}
	if f, ok := schema.AsNumber(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// groupKey identifies a label for equality. Numbers of any Go type are
// equal when their values are, so 1 and 1.0 share a group, but "1" and 1 do
// not.
func groupKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "s:" + x
	case bool:
		return "b:" + strconv.FormatBool(x)
	}
	if f, ok := schema.AsNumber(v); ok {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

var defaultFinder = sync.OnceValue(func() schema.ArrayFinder {
	r := schema.NewBuiltinRegistry()
	_ = r.RegisterTransform(Name, attributes())
	return r
})
