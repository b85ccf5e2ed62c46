package io

import "github.com/matzehuels/tracesplit/pkg/trace"

// Figure is a set of traces and the layout they are drawn in. The layout is
// carried through untouched.
type Figure struct {
	Data   []trace.Trace  `json:"data"`
	Layout map[string]any `json:"layout,omitempty"`
}

// Format names.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)
