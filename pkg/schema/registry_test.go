package schema

import (
	"reflect"
	"testing"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

func pathStrings(ps []trace.Path) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func TestBuiltinRegistry(t *testing.T) {
	r := NewBuiltinRegistry()
	want := []string{"bar", "box", "histogram", "scatter"}
	if got := r.TraceTypes(); !reflect.DeepEqual(got, want) {
		t.Errorf("TraceTypes() = %v, want %v", got, want)
	}

	attrs, ok := r.TraceType("scatter")
	if !ok {
		t.Fatal("scatter not registered")
	}
	for _, name := range []string{"x", "y", "visible", "name", "ids", "marker.color"} {
		if _, ok := attrs[name]; !ok {
			t.Errorf("scatter missing attribute %q", name)
		}
	}
}

func TestRegisterTraceType_InvalidName(t *testing.T) {
	r := NewRegistry()
	err := r.RegisterTraceType("Bad Name", Attributes{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RegisterTraceType error = %v, want INVALID_INPUT", err)
	}
}

func TestFindArrayAttributes(t *testing.T) {
	r := NewBuiltinRegistry()
	if err := r.RegisterTransform("groupby", Attributes{
		"groups": {ValType: DataArray},
		"style":  {ValType: Any},
	}); err != nil {
		t.Fatal(err)
	}

	tr := trace.Trace{
		"x":      []any{1.0, 2.0},
		"y":      []float64{3, 4},
		"text":   "same for all",
		"marker": map[string]any{"color": []any{"red", "blue"}, "size": 4.0},
		"line":   map[string]any{"color": "black"},
		"transforms": []any{
			map[string]any{"type": "groupby", "groups": []any{"a", "b"}, "style": []any{}},
			map[string]any{"type": "unknown", "groups": []any{"a", "b"}},
		},
	}

	got := pathStrings(r.FindArrayAttributes(tr))
	want := []string{"marker.color", "x", "y", "transforms[0].groups"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindArrayAttributes() = %v, want %v", got, want)
	}
}

func TestFindArrayAttributes_TraceType(t *testing.T) {
	r := NewBuiltinRegistry()

	box := trace.Trace{"type": "box", "y": []any{1.0}, "marker": map[string]any{"color": []any{"red"}}}
	if got, want := pathStrings(r.FindArrayAttributes(box)), []string{"y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("box arrays = %v, want %v (marker.color is not per-point on box)", got, want)
	}

	unknown := trace.Trace{"type": "sankey", "x": []any{1.0}}
	if got := r.FindArrayAttributes(unknown); len(got) != 0 {
		t.Errorf("unknown type arrays = %v, want none", pathStrings(got))
	}
}

func TestStaticFinder(t *testing.T) {
	f := StaticFinder{trace.MustParsePath("x"), trace.MustParsePath("meta.values"), trace.MustParsePath("name")}
	tr := trace.Trace{"x": []any{1.0}, "name": "n", "meta": map[string]any{"values": []any{2.0}}}

	got := pathStrings(f.FindArrayAttributes(tr))
	if want := []string{"x", "meta.values"}; !reflect.DeepEqual(got, want) {
		t.Errorf("StaticFinder = %v, want %v", got, want)
	}
}
