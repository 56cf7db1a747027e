// Package nodelink renders graph frames as node-link diagrams.
//
// # Overview
//
// A [render.Frame] assigns one fill color per node. [ToDOT] combines the
// frame with the graph's edges into undirected Graphviz DOT source, and
// [RenderSVG] lays it out and renders it in-process.
//
//	dot := nodelink.ToDOT(g, frame, nodelink.Options{Engine: "neato", Seed: 42})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Stable Layout
//
// Force-directed engines place nodes from a random start. [Options.Seed]
// is written as the DOT start attribute so that every frame of an
// animation puts each node in the same spot.
//
// # Frame Files
//
// [FileSink] is a [render.Drawer] that writes each frame to
// frame-NNN.svg, numbered by [render.Frame.Seq]:
//
//	sink, err := nodelink.NewFileSink(ctx, "frames", g, opts, nil)
//	ctrl := render.NewController(g, render.WithDrawer(sink))
//
// # Caching
//
// A [Renderer] looks up each DOT source in a [cache.Cache] before calling
// Graphviz. Replaying a traversal produces the same DOT for every frame, so
// only the first run pays for layout. A nil *Renderer renders directly.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz
// compiled to WebAssembly, so no system installation is required.
package nodelink
