package trace

import (
	"reflect"
	"testing"
)

func TestLen(t *testing.T) {
	tests := []struct {
		v    any
		n    int
		isSq bool
	}{
		{[]any{1, 2}, 2, true},
		{[]float64{}, 0, true},
		{[]string{"a"}, 1, true},
		{[]int{1, 2, 3}, 3, true},
		{[2]int{1, 2}, 2, true},
		{"abc", 0, false},
		{nil, 0, false},
		{map[string]any{}, 0, false},
		{3.0, 0, false},
	}

	for _, tt := range tests {
		n, ok := Len(tt.v)
		if n != tt.n || ok != tt.isSq {
			t.Errorf("Len(%#v) = (%d, %v), want (%d, %v)", tt.v, n, ok, tt.n, tt.isSq)
		}
		if IsSequence(tt.v) != tt.isSq {
			t.Errorf("IsSequence(%#v) = %v, want %v", tt.v, !tt.isSq, tt.isSq)
		}
	}
}

func TestAt(t *testing.T) {
	if v, ok := At([]int{4, 5}, 1); !ok || v != 5 {
		t.Errorf("At([]int, 1) = (%v, %v), want (5, true)", v, ok)
	}
	if _, ok := At([]any{1}, 1); ok {
		t.Error("At past end should fail")
	}
	if _, ok := At([]any{1}, -1); ok {
		t.Error("At negative index should fail")
	}
	if _, ok := At("ab", 0); ok {
		t.Error("At on string should fail")
	}
}

func TestToSlice(t *testing.T) {
	got, ok := ToSlice([]string{"a", "b"})
	if !ok {
		t.Fatal("ToSlice([]string) failed")
	}
	if want := []any{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ToSlice = %v, want %v", got, want)
	}
	if _, ok := ToSlice(map[string]any{}); ok {
		t.Error("ToSlice(map) should fail")
	}
}

func TestTraceAccessors(t *testing.T) {
	tr := Trace{
		"type": "bar",
		"name": 3.0,
		"transforms": []any{
			map[string]any{"type": "groupby"},
			"bogus",
		},
	}
	if got := tr.Type(); got != "bar" {
		t.Errorf("Type() = %q, want bar", got)
	}
	if got := tr.Name(); got != "3" {
		t.Errorf("Name() = %q, want 3", got)
	}
	transforms := tr.Transforms()
	if len(transforms) != 2 {
		t.Fatalf("len(Transforms()) = %d, want 2", len(transforms))
	}
	if transforms[0]["type"] != "groupby" {
		t.Errorf("Transforms()[0] = %v", transforms[0])
	}
	if transforms[1] != nil {
		t.Errorf("Transforms()[1] = %v, want nil", transforms[1])
	}
}
