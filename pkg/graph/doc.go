// Package graph provides the undirected graph model analyzed by graphwalk.
//
// A [Graph] has nodes identified by the integers 0..N-1 and a set of
// undirected edges between distinct nodes. It is built once and never
// mutated afterwards, so it can be shared freely between the analysis
// engines, the render-state controller and the animation goroutine.
//
// # Construction
//
// [New] validates an edge list and rejects self-loops, parallel edges and
// out-of-range identities with an INVALID_GRAPH error:
//
//	g, err := graph.New(4, []graph.Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
//
// [KarateClub] returns the fixed 34-node, 78-edge dataset the tool ships
// with. [ReadGraphFile] loads any other graph from node-link JSON:
//
//	{
//	  "nodes": [{"id": 0}, {"id": 1}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// # Queries
//
// [Graph.Neighbors] returns neighbors in ascending identity order, and
// adjacency is symmetric: v is a neighbor of u exactly when u is a neighbor
// of v. The graph also exposes a gonum view through [Graph.Undirected] so
// gonum's algorithms (Bron-Kerbosch, Dijkstra) run over the same edges.
package graph
