package trace

// ExtendDeep overlays src onto target and returns target. Nested objects are
// merged key by key and arrays element by element: element i of a src array
// is merged onto element i of the target array, and target elements past the
// end of src are kept. Any other value in src replaces the corresponding
// value in target. Values copied from src are deep copies, so target never
// aliases src afterwards.
//
// A nil target is allocated.
func ExtendDeep(target, src map[string]any) map[string]any {
	if target == nil {
		target = make(map[string]any, len(src))
	}
	for k, sv := range src {
		target[k] = extendValue(target[k], sv)
	}
	return target
}

func extendValue(tv, sv any) any {
	if sm, ok := AsMap(sv); ok {
		tm, ok := AsMap(tv)
		if !ok {
			tm = make(map[string]any, len(sm))
		}
		return ExtendDeep(tm, sm)
	}
	if sa, ok := ToSlice(sv); ok {
		// a non-array target starts over from an empty array
		ta, _ := ToSlice(tv)
		for i, e := range sa {
			if i < len(ta) {
				ta[i] = extendValue(ta[i], e)
				continue
			}
			ta = append(ta, extendValue(nil, e))
		}
		if ta == nil {
			ta = []any{}
		}
		return ta
	}
	return Clone(sv)
}
