// Package pkg provides the libraries behind tracesplit.
//
// # Overview
//
// Tracesplit applies declarative trace transforms to plotly-style figure
// data. The central transform, groupby, partitions one trace into one trace
// per distinct group label, keeping every per-point array aligned and
// overlaying a style per group. The pkg directory is organized into these
// areas:
//
//  1. [trace] and [schema] - The data model: traces, property paths, deep
//     copy and merge, and the attribute declarations of each trace type
//  2. [transform] - The transform module contract and registry, with the
//     built-in modules under transform/groupby and transform/all
//  3. [pipeline] - Orchestration (resolve defaults → apply transforms →
//     cache results)
//  4. [cache], [observability], [errors] - Infrastructure shared by every
//     entry point
//  5. [io], [render], [api] - Figure files, fan-out diagrams and the HTTP
//     surface
//
// # Architecture
//
// The typical data flow:
//
//	Figure JSON/TOML
//	       ↓
//	  [io] package (decode figure data)
//	       ↓
//	  [pipeline] package (trace defaults + transform defaults)
//	       ↓
//	  [transform] modules (groupby splits each trace)
//	       ↓
//	  Figure JSON, fan-out SVG/PNG, or HTTP response
//
// # Quick Start
//
// Split a trace by group:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/tracesplit/pkg/pipeline"
//	    "github.com/matzehuels/tracesplit/pkg/trace"
//	)
//
//	in := []trace.Trace{{
//	    "type": "scatter",
//	    "x":    []any{1, 2, 3, 4},
//	    "transforms": []any{map[string]any{
//	        "type":   "groupby",
//	        "groups": []any{"a", "b", "a", "b"},
//	    }},
//	}}
//
//	r := pipeline.NewRunner(nil, nil, nil)
//	res, err := r.Execute(context.Background(), in, pipeline.Options{})
//	// res.Traces holds trace "a" with x [1 3] and trace "b" with x [2 4]
//
// The pure split is also available directly as groupby.Split.
package pkg
