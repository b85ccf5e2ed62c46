package transform

import (
	"reflect"
	"testing"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/schema"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

type stubModule struct{ name string }

func (m stubModule) Name() string { return m.name }

func (m stubModule) Attributes() schema.Attributes {
	return schema.Attributes{"values": {ValType: schema.DataArray}}
}

func (m stubModule) SupplyDefaults(in map[string]any) map[string]any { return in }

func (m stubModule) Transform(data []trace.Trace, _ State) ([]trace.Trace, error) { return data, nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry(stubModule{"zeta"}, stubModule{"alpha"})

	if got, want := r.Names(), []string{"alpha", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	m, err := r.Lookup("alpha")
	if err != nil {
		t.Fatalf("Lookup(alpha) error: %v", err)
	}
	if m.Name() != "alpha" {
		t.Errorf("Lookup(alpha).Name() = %q", m.Name())
	}

	if _, err := r.Lookup("missing"); !errors.Is(err, errors.ErrCodeUnknownTransform) {
		t.Errorf("Lookup(missing) error = %v, want UNKNOWN_TRANSFORM", err)
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubModule{"alpha"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubModule{"alpha"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate Register error = %v, want INVALID_INPUT", err)
	}
	if err := r.Register(stubModule{"Not Valid"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid name Register error = %v, want INVALID_INPUT", err)
	}
}

func TestNewRegistry_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRegistry with duplicate names did not panic")
		}
	}()
	NewRegistry(stubModule{"a"}, stubModule{"a"})
}

func TestDeclareAttributes(t *testing.T) {
	s := schema.NewBuiltinRegistry()
	if err := NewRegistry(stubModule{"stub"}).DeclareAttributes(s); err != nil {
		t.Fatal(err)
	}

	tr := trace.Trace{"transforms": []any{map[string]any{"type": "stub", "values": []any{1.0}}}}
	paths := s.FindArrayAttributes(tr)
	if len(paths) != 1 || paths[0].String() != "transforms[0].values" {
		t.Errorf("FindArrayAttributes = %v, want [transforms[0].values]", paths)
	}
}

func TestActive(t *testing.T) {
	tests := []struct {
		opts map[string]any
		want bool
	}{
		{map[string]any{}, true},
		{map[string]any{"active": true}, true},
		{map[string]any{"active": false}, false},
		{map[string]any{"active": "no"}, true},
	}
	for _, tt := range tests {
		if got := Active(tt.opts); got != tt.want {
			t.Errorf("Active(%v) = %v, want %v", tt.opts, got, tt.want)
		}
	}
}
