package trace

import "reflect"

// Clone returns a deep copy of v. Objects and arrays are copied recursively;
// scalars are returned as-is. Typed slices and string-keyed maps keep their
// concrete type.
func Clone(v any) any {
	switch x := v.(type) {
	case nil, string, float64, bool, int, int64:
		return x
	case map[string]any:
		return cloneMap(x)
	case Trace:
		return Trace(cloneMap(x))
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Clone(e)
		}
		return out
	case []string:
		return append([]string(nil), x...)
	case []float64:
		return append([]float64(nil), x...)
	}
	return cloneReflect(v)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

func cloneReflect(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneValue(rv.Index(i)))
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return out.Interface()
	}
	return v
}

func cloneValue(rv reflect.Value) reflect.Value {
	if !rv.IsValid() || (rv.Kind() == reflect.Interface && rv.IsNil()) {
		return rv
	}
	c := Clone(rv.Interface())
	if c == nil {
		return reflect.Zero(rv.Type())
	}
	return reflect.ValueOf(c).Convert(rv.Type())
}
