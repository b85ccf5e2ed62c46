// Package fanout draws how a split fanned input traces out into output
// traces.
//
// Each input trace becomes a node on the left, each output trace a node on
// the right, and an edge links every output to the input it came from:
//
//	dot := fanout.ToDOT(fig.Data, result.Traces, result.Origins, fanout.Options{Detailed: true})
//	svg, err := fanout.RenderSVG(ctx, dot)
//
// Output nodes are filled with the trace's marker color when it is a single
// color, so style overlays are visible in the diagram.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering; no Graphviz installation is needed.
package fanout
