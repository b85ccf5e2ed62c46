package trace

import "reflect"

// IsSequence reports whether v is an array value. Strings are not sequences.
func IsSequence(v any) bool {
	_, ok := Len(v)
	return ok
}

// Len returns the length of an array value.
func Len(v any) (int, bool) {
	switch x := v.(type) {
	case nil, string:
		return 0, false
	case []any:
		return len(x), true
	case []float64:
		return len(x), true
	case []string:
		return len(x), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len(), true
	}
	return 0, false
}

// At returns element i of an array value.
func At(v any, i int) (any, bool) {
	if i < 0 {
		return nil, false
	}
	switch x := v.(type) {
	case nil, string:
		return nil, false
	case []any:
		if i >= len(x) {
			return nil, false
		}
		return x[i], true
	case []float64:
		if i >= len(x) {
			return nil, false
		}
		return x[i], true
	case []string:
		if i >= len(x) {
			return nil, false
		}
		return x[i], true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if i >= rv.Len() {
		return nil, false
	}
	return rv.Index(i).Interface(), true
}

// ToSlice converts an array value of any element type to []any. The returned
// slice shares elements with v but not its backing array unless v is
// already a []any.
func ToSlice(v any) ([]any, bool) {
	if x, ok := v.([]any); ok {
		return x, true
	}
	n, ok := Len(v)
	if !ok {
		return nil, false
	}
	out := make([]any, n)
	for i := range out {
		out[i], _ = At(v, i)
	}
	return out, true
}
