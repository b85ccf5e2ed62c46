package all

import (
	"testing"

	"github.com/matzehuels/tracesplit/pkg/transform/groupby"
)

func TestRegistry(t *testing.T) {
	r := Registry()
	m, err := r.Lookup(groupby.Name)
	if err != nil {
		t.Fatalf("Lookup(%s) error: %v", groupby.Name, err)
	}
	if _, ok := m.Attributes()["groups"]; !ok {
		t.Error("groupby does not declare groups")
	}
}
