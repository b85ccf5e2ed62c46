package trace

import (
	"strconv"
	"strings"

	"github.com/matzehuels/tracesplit/pkg/errors"
)

// Path is a parsed property path. Each segment is either a string (object
// key) or an int (array index).
type Path []any

// ParsePath parses dotted/bracketed notation such as "marker.color" or
// "transforms[0].groups".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "empty property path")
	}

	var p Path
	var key strings.Builder
	flush := func() error {
		if key.Len() == 0 {
			return errors.New(errors.ErrCodeInvalidPath, "empty segment in %q", s)
		}
		p = append(p, key.String())
		key.Reset()
		return nil
	}

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '.':
			// "a[0].b": the bracket already closed the previous segment
			if i > 0 && s[i-1] == ']' {
				continue
			}
			if err := flush(); err != nil {
				return nil, err
			}
		case '[':
			if key.Len() > 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			} else if i == 0 || s[i-1] != ']' {
				return nil, errors.New(errors.ErrCodeInvalidPath, "index without key in %q", s)
			}
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, errors.New(errors.ErrCodeInvalidPath, "unclosed bracket in %q", s)
			}
			idx, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, errors.New(errors.ErrCodeInvalidPath, "invalid index %q in %q", s[i+1:i+end], s)
			}
			p = append(p, idx)
			i += end
			if i+1 < len(s) && s[i+1] != '.' && s[i+1] != '[' {
				return nil, errors.New(errors.ErrCodeInvalidPath, "unexpected %q after index in %q", s[i+1], s)
			}
		case ']':
			return nil, errors.New(errors.ErrCodeInvalidPath, "unbalanced bracket in %q", s)
		default:
			key.WriteByte(c)
		}
	}
	if key.Len() > 0 {
		p = append(p, key.String())
	} else if s[len(s)-1] == '.' {
		return nil, errors.New(errors.ErrCodeInvalidPath, "trailing dot in %q", s)
	}
	return p, nil
}

// MustParsePath is like ParsePath but panics on error. It is intended for
// static attribute declarations.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String formats the path back to dotted/bracketed notation.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		switch s := seg.(type) {
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s))
			b.WriteByte(']')
		case string:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s)
		}
	}
	return b.String()
}

// Join returns a new path with segs appended.
func (p Path) Join(segs ...any) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Get returns the value at p inside root.
func Get(root any, p Path) (any, bool) {
	cur := root
	for _, seg := range p {
		switch s := seg.(type) {
		case string:
			m, ok := AsMap(cur)
			if !ok {
				return nil, false
			}
			if cur, ok = m[s]; !ok {
				return nil, false
			}
		case int:
			v, ok := At(cur, s)
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// Set stores v at p inside root, creating intermediate objects and arrays.
// Arrays are grown with nil elements when the index is past their end.
// Typed arrays on the path ([]map[string]any, []float64...) are replaced by
// a []any holding the same elements.
func Set(root map[string]any, p Path, v any) error {
	if len(p) == 0 {
		return errors.New(errors.ErrCodeInvalidPath, "cannot set empty path")
	}
	key, ok := p[0].(string)
	if !ok {
		return errors.New(errors.ErrCodeInvalidPath, "path %s must start with a key", p)
	}
	if len(p) == 1 {
		root[key] = v
		return nil
	}
	child, err := setIn(root[key], p, 1, v)
	if err != nil {
		return err
	}
	root[key] = child
	return nil
}

// setIn writes v at p[i:] below cur and returns the (possibly replaced)
// container so the caller can store it back.
func setIn(cur any, p Path, i int, v any) (any, error) {
	switch s := p[i].(type) {
	case string:
		m, ok := AsMap(cur)
		if !ok {
			if cur != nil {
				return nil, errors.New(errors.ErrCodeInvalidPath, "%s: %T is not an object", p[:i], cur)
			}
			m = make(map[string]any)
		}
		if i == len(p)-1 {
			m[s] = v
			return m, nil
		}
		child, err := setIn(m[s], p, i+1, v)
		if err != nil {
			return nil, err
		}
		m[s] = child
		return m, nil
	case int:
		arr, ok := ToSlice(cur)
		if !ok {
			if cur != nil {
				return nil, errors.New(errors.ErrCodeInvalidPath, "%s: %T is not an array", p[:i], cur)
			}
			arr = nil
		}
		for len(arr) <= s {
			arr = append(arr, nil)
		}
		if i == len(p)-1 {
			arr[s] = v
			return arr, nil
		}
		child, err := setIn(arr[s], p, i+1, v)
		if err != nil {
			return nil, err
		}
		arr[s] = child
		return arr, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidPath, "invalid segment %v", p[i])
}
