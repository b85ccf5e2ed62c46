package fanout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the trace type and point count to node labels.
	Detailed bool
}

// ToDOT converts a split to Graphviz DOT format. origins[i] is the index in
// inputs of outputs[i]; out-of-range origins produce an unconnected node.
func ToDOT(inputs, outputs []trace.Trace, origins []int, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("\n")

	buf.WriteString("  subgraph inputs {\n    rank=same;\n")
	for i, t := range inputs {
		fmt.Fprintf(&buf, "    %q [%s];\n", inputID(i), strings.Join(fmtAttrs(t, i, opts.Detailed, false), ", "))
	}
	buf.WriteString("  }\n")

	buf.WriteString("  subgraph outputs {\n    rank=same;\n")
	for i, t := range outputs {
		fmt.Fprintf(&buf, "    %q [%s];\n", outputID(i), strings.Join(fmtAttrs(t, i, opts.Detailed, true), ", "))
	}
	buf.WriteString("  }\n\n")

	for i := range outputs {
		if i >= len(origins) || origins[i] < 0 || origins[i] >= len(inputs) {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", inputID(origins[i]), outputID(i))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func inputID(i int) string  { return "in" + strconv.Itoa(i) }
func outputID(i int) string { return "out" + strconv.Itoa(i) }

func fmtLabel(t trace.Trace, index int, detailed bool) string {
	name := t.Name()
	if name == "" {
		name = fmt.Sprintf("trace %d", index)
	}
	if !detailed {
		return name
	}
	typ := t.Type()
	if typ == "" {
		typ = "scatter"
	}
	return fmt.Sprintf("%s\n%s, %d points", name, typ, pointCount(t))
}

func fmtAttrs(t trace.Trace, index int, detailed, output bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(t, index, detailed))}
	if !output {
		attrs = append(attrs, "fillcolor=lightgrey")
		return attrs
	}
	if c, ok := trace.Get(t, trace.Path{"marker", "color"}); ok {
		if s, isString := c.(string); isString && s != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", s))
		}
	}
	return attrs
}

// pointCount is the length of the first of x, y or ids that is an array.
func pointCount(t trace.Trace) int {
	for _, k := range []string{"x", "y", "ids"} {
		if n, ok := trace.Len(t[k]); ok {
			return n
		}
	}
	return 0
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

// Render renders dot in the named format, "svg", "png" or "dot".
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	if err := errors.ValidateFormat(format, "svg", "png", "dot"); err != nil {
		return nil, err
	}
	switch format {
	case "svg":
		return RenderSVG(ctx, dot)
	case "png":
		return RenderPNG(ctx, dot)
	}
	return []byte(dot), nil
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales to its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
