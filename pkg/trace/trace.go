package trace

import "fmt"

// Trace is one plot series. Values follow encoding/json conventions:
// map[string]any for objects, []any for arrays, float64 for numbers.
type Trace map[string]any

// Clone returns a deep copy of t.
func (t Trace) Clone() Trace {
	if t == nil {
		return nil
	}
	return cloneMap(t)
}

// Type returns the trace type, or "" when unset.
func (t Trace) Type() string {
	s, _ := t["type"].(string)
	return s
}

// Name returns the trace name, or "" when unset.
func (t Trace) Name() string {
	switch v := t["name"].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Transforms returns the trace's transform entries. Entries that are not
// objects are returned as nil maps so indices stay aligned.
func (t Trace) Transforms() []map[string]any {
	raw, ok := ToSlice(t["transforms"])
	if !ok {
		return nil
	}
	out := make([]map[string]any, len(raw))
	for i, v := range raw {
		out[i], _ = AsMap(v)
	}
	return out
}

// AsMap returns v as a plain object when it is one.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Trace:
		return map[string]any(m), true
	}
	return nil, false
}
