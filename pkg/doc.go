// Package pkg provides the libraries behind graphwalk.
//
// # Overview
//
// Graphwalk analyzes a small undirected graph (Zachary's karate club by
// default) and animates the results. The pkg directory is organized into
// four areas:
//
//  1. Graph and algorithms: [graph], [traverse], [coloring], [analysis]
//  2. Rendering: [render], [render/nodelink], [animate], [cache]
//  3. Orchestration: [actions], [server], [pubsub]
//  4. Support: [config], [errors], [observability], [httputil], [buildinfo]
//
// # Architecture
//
// The typical data flow through graphwalk:
//
//	node-link JSON / karate club
//	         ↓
//	    [graph] package (validated adjacency)
//	         ↓
//	    [actions] package (run BFS, DFS, coloring, cycle, clique)
//	         ↓
//	    [render] package (compose frame colors, one animation at a time)
//	         ↓
//	    Drawer: terminal strip, TUI, SSE stream, or SVG/PNG via Graphviz
//
// # Quick Start
//
// Run a traversal and write every frame as SVG:
//
//	g := graph.KarateClub()
//	sink, _ := nodelink.NewFileSink(ctx, "frames", g, nodelink.Options{}, nil)
//	ctrl := render.NewController(g, render.WithDrawer(sink))
//	runner := actions.NewRunner(ctrl, actions.WithStart(0))
//
//	rep, _ := runner.RunBFS(ctx)
//	fmt.Println(rep.Lines())
//	<-rep.Session.Done()
//
// # Main Packages
//
// ## Graph and Algorithms
//
// [graph] - Immutable undirected graph with ascending adjacency lists, the
// built-in karate club data set, and node-link JSON import and export.
//
// [traverse] - Breadth-first and depth-first traversal recording the depth
// at which each node is first reached.
//
// [coloring] - Greedy proper coloring in node-id order.
//
// [analysis] - Cycle detection and maximum clique search, both backed by
// gonum.
//
// ## Rendering
//
// [render] - The controller that owns render state: base colors, the
// active coloring or clique, and the single traversal animation. It emits
// [render.Frame] values to a [render.Drawer].
//
// [animate] - Sessions and the ticker-driven scheduler that steps through
// a traversal one frame per interval.
//
// [render/nodelink] - Graphviz DOT export and in-process SVG/PNG rendering.
//
// [cache] - Content-addressed store for rendered frames.
//
// ## Orchestration
//
// [actions] - Named operations over a controller, returning reports that
// the CLI, TUI and HTTP server all print the same way.
//
// [server] - HTTP API and Server-Sent Events stream built on chi.
//
// [pubsub] - Topic-based publisher with replay buffers for SSE clients.
package pkg
