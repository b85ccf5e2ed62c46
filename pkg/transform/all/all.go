// Package all wires the built-in transform modules into a registry.
package all

import (
	"github.com/matzehuels/tracesplit/pkg/transform"
	"github.com/matzehuels/tracesplit/pkg/transform/groupby"
)

// Modules returns the built-in transform modules.
func Modules() []transform.Module {
	return []transform.Module{
		groupby.Module{},
	}
}

// Registry returns a new registry holding the built-in modules.
func Registry() *transform.Registry {
	return transform.NewRegistry(Modules()...)
}
