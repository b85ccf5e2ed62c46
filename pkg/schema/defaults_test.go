package schema

import (
	"testing"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

func TestSupplyTraceDefaults(t *testing.T) {
	r := NewBuiltinRegistry()
	in := trace.Trace{
		"x":          []any{1.0, 2.0},
		"mode":       "sideways",
		"transforms": []any{map[string]any{"type": "groupby"}},
		"meta":       map[string]any{"source": "csv"},
	}

	out, err := r.SupplyTraceDefaults(in, 3)
	if err != nil {
		t.Fatalf("SupplyTraceDefaults error: %v", err)
	}

	checks := map[string]any{
		"type":        "scatter",
		"name":        "trace 3",
		"visible":     true,
		"mode":        "markers",
		"marker.size": 6.0,
		"meta.source": "csv",
	}
	for path, want := range checks {
		got, _ := trace.Get(out, trace.MustParsePath(path))
		if got != want {
			t.Errorf("%s = %v, want %v", path, got, want)
		}
	}
	if _, ok := out["transforms"]; !ok {
		t.Error("transforms should be carried over")
	}

	out["x"].([]any)[0] = 100.0
	if in["x"].([]any)[0] != 1.0 {
		t.Error("resolved trace aliases input")
	}
}

func TestSupplyTraceDefaults_KeepsName(t *testing.T) {
	r := NewBuiltinRegistry()
	out, err := r.SupplyTraceDefaults(trace.Trace{"type": "bar", "name": "sales"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Name(); got != "sales" {
		t.Errorf("name = %q, want sales", got)
	}
	if got := out["orientation"]; got != "v" {
		t.Errorf("orientation = %v, want v", got)
	}
}

func TestSupplyTraceDefaults_UnknownType(t *testing.T) {
	r := NewBuiltinRegistry()
	for _, in := range []trace.Trace{{"type": "sankey"}, {"type": 4.0}} {
		_, err := r.SupplyTraceDefaults(in, 0)
		if !errors.Is(err, errors.ErrCodeUnknownTraceType) {
			t.Errorf("SupplyTraceDefaults(%v) error = %v, want UNKNOWN_TRACE_TYPE", in, err)
		}
	}
}
