package groupby

import "github.com/matzehuels/tracesplit/pkg/schema"

// Name is the transform type name.
const Name = "groupby"

func attributes() schema.Attributes {
	return schema.Attributes{
		"active": {
			ValType:     schema.Boolean,
			Dflt:        true,
			Description: "Toggles whether or not the transform is active.",
		},
		"groups": {
			ValType: schema.DataArray,
			Dflt:    []any{},
			Description: "Sets the groups in which the trace data will be split. " +
				"With x [1, 2, 3, 4] and groups [a, b, a, b] the trace is split " +
				"into one trace with x [1, 3] and one with x [2, 4].",
		},
		"style": {
			ValType: schema.Any,
			Dflt:    map[string]any{},
			Description: "Sets each group's style, keyed by group label. " +
				"With style {a: {marker: {color: red}}} the points of group a are drawn in red.",
		},
	}
}
