package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Engine is the Graphviz layout engine. Defaults to "neato".
	Engine string
	// Seed fixes the initial layout so that every frame of an animation
	// places nodes at the same positions.
	Seed int
}

func (o Options) withDefaults() Options {
	if o.Engine == "" {
		o.Engine = "neato"
	}
	return o
}

// ToDOT converts a graph and one frame of node colors to Graphviz DOT.
// Nodes missing from f.Colors are left white.
func ToDOT(g *graph.Graph, f render.Frame, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", opts.Engine)
	fmt.Fprintf(&buf, "  start=%d;\n", opts.Seed)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	if f.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", f.Title)
		buf.WriteString("  labelloc=t;\n")
		buf.WriteString("  fontsize=20;\n")
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.4, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		color := render.Color("white")
		if n < len(f.Colors) && f.Colors[n] != "" {
			color = f.Colors[n]
		}
		fmt.Fprintf(&buf, "  %d [fillcolor=%q];\n", n, color)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderFormat(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
