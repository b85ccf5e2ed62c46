// Package io reads and writes figures: a list of traces plus an optional
// layout object.
//
// # JSON Format
//
// A figure is an object with a "data" array of traces:
//
//	{
//	  "data": [
//	    {
//	      "type": "scatter",
//	      "x": [1, 2, 3, 4],
//	      "y": [2, 4, 6, 8],
//	      "transforms": [{"type": "groupby", "groups": ["a", "b", "a", "b"]}]
//	    }
//	  ],
//	  "layout": {"title": "sales"}
//	}
//
// A bare array of traces is accepted as a figure with no layout.
//
// # TOML Format
//
// The same figure can be written as TOML, with one [[data]] table per trace:
//
//	[[data]]
//	type = "scatter"
//	x = [1, 2, 3, 4]
//
//	[[data.transforms]]
//	type = "groupby"
//	groups = ["a", "b", "a", "b"]
//
// TOML values are normalized to their JSON equivalents: integers become
// float64, arrays of tables become []any and datetimes become RFC 3339
// strings, so a figure reads the same from either format.
//
// # Export
//
// Figures are always written as indented JSON with [WriteJSON] or
// [ExportJSON].
package io
