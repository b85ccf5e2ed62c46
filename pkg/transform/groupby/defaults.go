package groupby

import (
	"github.com/matzehuels/tracesplit/pkg/schema"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

// Config is the typed form of the resolved options.
type Config struct {
	Active bool
	Groups []any          // nil when inactive
	Style  map[string]any // nil when inactive
}

// SupplyDefaults resolves the raw options of a groupby entry. An inactive
// entry resolves to {"active": false} only.
func SupplyDefaults(in map[string]any) map[string]any {
	out := make(map[string]any)
	attrs := attributes()

	if active, _ := schema.Coerce(in, out, attrs, "active", nil).(bool); !active {
		return out
	}
	schema.Coerce(in, out, attrs, "groups", nil)
	schema.Coerce(in, out, attrs, "style", nil)
	return out
}

// ResolveDefaults is SupplyDefaults with a typed result. A style that is
// not an object resolves to an empty overlay.
func ResolveDefaults(in map[string]any) Config {
	out := SupplyDefaults(in)
	active, _ := out["active"].(bool)
	if !active {
		return Config{}
	}
	groups, _ := out["groups"].([]any)
	style, ok := trace.AsMap(out["style"])
	if !ok {
		style = map[string]any{}
	}
	return Config{Active: true, Groups: groups, Style: style}
}
