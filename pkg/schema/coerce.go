package schema

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/matzehuels/tracesplit/pkg/trace"
)

// Coerce resolves attribute name from in into out and returns the resolved
// value. If the input value is missing or invalid for the declared type,
// dflt is used, or the declared default when dflt is nil. When neither
// exists nothing is written and nil is returned.
//
// Undeclared names are treated as [Any]. Values written to out are deep
// copies, so out never aliases in.
func Coerce(in, out map[string]any, attrs Attributes, name string, dflt any) any {
	attr, ok := attrs[name]
	if !ok {
		attr = Attribute{ValType: Any}
	}
	p, err := trace.ParsePath(name)
	if err != nil {
		return dflt
	}
	if dflt == nil {
		dflt = attr.Dflt
	}

	v, _ := trace.Get(in, p)
	if attr.ArrayOk {
		if s, ok := trace.ToSlice(v); ok {
			return set(out, p, trace.Clone(s))
		}
	}
	if cv, ok := attr.validate(v); ok {
		return set(out, p, cv)
	}
	if dflt == nil {
		return nil
	}
	return set(out, p, trace.Clone(dflt))
}

func set(out map[string]any, p trace.Path, v any) any {
	// A conflicting shape in out ("marker" already a string) leaves out as
	// it was; the caller still gets the resolved value.
	_ = trace.Set(out, p, v)
	return v
}

// validate returns v in canonical form if it is acceptable for a.
func (a Attribute) validate(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	switch a.ValType {
	case Boolean:
		b, ok := v.(bool)
		return b, ok
	case Number, Integer:
		f, ok := AsNumber(v)
		if !ok {
			return nil, false
		}
		if a.ValType == Integer && f != float64(int64(f)) {
			return nil, false
		}
		if (a.Min != nil && f < *a.Min) || (a.Max != nil && f > *a.Max) {
			return nil, false
		}
		return f, true
	case String:
		switch s := v.(type) {
		case string:
			return s, true
		case bool:
			return nil, false
		}
		if f, ok := AsNumber(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return nil, false
	case Enumerated:
		for _, allowed := range a.Values {
			if Equal(v, allowed) {
				return allowed, true
			}
		}
		return nil, false
	case Color:
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, false
		}
		return s, true
	case DataArray:
		s, ok := trace.ToSlice(v)
		if !ok {
			return nil, false
		}
		return trace.Clone(s), true
	case Any:
		return trace.Clone(v), true
	}
	return nil, false
}

// Equal compares two attribute values the way group labels and enumerated
// values are compared: numbers by numeric value regardless of Go type,
// everything else with ==. Non-comparable values are never equal.
func Equal(a, b any) bool {
	fa, aNum := AsNumber(a)
	fb, bNum := AsNumber(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || (ta != nil && !ta.Comparable()) {
		return false
	}
	return a == b
}

// AsNumber returns v as a float64 when it is a Go numeric type or a
// json.Number.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
