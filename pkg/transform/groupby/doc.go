// Package groupby implements the "groupby" transform, which splits one
// trace into one trace per distinct group label.
//
// Given a trace whose per-point arrays are parallel to a "groups" array,
// the transform emits a trace for each label, in the order labels first
// appear. Each output is a deep copy of the input in which every per-point
// array holds only the elements at that label's positions, "name" is set to
// the label, and the label's entry in "style" (if any) is deep-merged on
// top:
//
//	{
//	  "x": [1, 2, 3, 4],
//	  "transforms": [{
//	    "type": "groupby",
//	    "groups": ["a", "b", "a", "b"],
//	    "style": {"a": {"marker": {"color": "red"}}}
//	  }]
//	}
//
// yields a trace named "a" with x [1, 3] drawn in red, and a trace named "b"
// with x [2, 4].
//
// Missing or invalid configuration never fails: an absent "active" enables
// the transform, and a missing or empty "groups" array leaves the trace
// unchanged.
package groupby
