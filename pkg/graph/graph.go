package graph

import (
	"errors"
	"fmt"
	"slices"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
)

var (
	// ErrSelfLoop is wrapped by [New] when an edge joins a node to itself.
	ErrSelfLoop = errors.New("self-loop")

	// ErrParallelEdge is wrapped by [New] when the same unordered pair
	// appears more than once in the edge list.
	ErrParallelEdge = errors.New("parallel edge")

	// ErrNodeOutOfRange is wrapped by [New] when an edge endpoint is not in
	// 0..N-1, and by [ReadGraph] when node identities are not contiguous.
	ErrNodeOutOfRange = errors.New("node out of range")
)

// Edge is an unordered pair of node identities.
type Edge struct {
	U, V int
}

// Normalize returns the edge with U < V.
func (e Edge) Normalize() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

func (e Edge) String() string { return fmt.Sprintf("%d-%d", e.U, e.V) }

// Graph is an immutable simple undirected graph over nodes 0..N-1.
//
// The zero value is an empty graph with no nodes. Graph is safe for
// concurrent reads.
type Graph struct {
	adj   [][]int // sorted neighbor lists, index = node
	edges []Edge  // normalized, sorted
	g     *simple.UndirectedGraph
}

// New builds a graph with n nodes and the given edges.
//
// Edges may be given in either orientation. The result is rejected with an
// INVALID_GRAPH error if any edge is a self-loop, repeats an earlier pair,
// or references a node outside 0..n-1.
func New(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidGraph, "negative node count %d", n)
	}

	ug := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		ug.AddNode(simple.Node(i))
	}

	adj := make([][]int, n)
	norm := make([]Edge, 0, len(edges))
	seen := make(map[Edge]struct{}, len(edges))

	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, gwerrors.Wrap(gwerrors.ErrCodeInvalidGraph, ErrNodeOutOfRange, "edge %s in graph of %d nodes", e, n)
		}
		if e.U == e.V {
			return nil, gwerrors.Wrap(gwerrors.ErrCodeInvalidGraph, ErrSelfLoop, "edge %s", e)
		}
		e = e.Normalize()
		if _, dup := seen[e]; dup {
			return nil, gwerrors.Wrap(gwerrors.ErrCodeInvalidGraph, ErrParallelEdge, "edge %s", e)
		}
		seen[e] = struct{}{}
		norm = append(norm, e)

		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
		ug.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}

	for _, nbrs := range adj {
		slices.Sort(nbrs)
	}
	slices.SortFunc(norm, func(a, b Edge) int {
		if a.U != b.U {
			return a.U - b.U
		}
		return a.V - b.V
	})

	return &Graph{adj: adj, edges: norm, g: ug}, nil
}

// MustNew is like [New] but panics on invalid input. It is intended for
// fixed datasets and tests.
func MustNew(n int, edges []Edge) *Graph {
	g, err := New(n, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// NodeCount returns N.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool { return len(g.adj) == 0 }

// HasNode reports whether id is in 0..N-1.
func (g *Graph) HasNode(id int) bool { return id >= 0 && id < len(g.adj) }

// Nodes returns all node identities in ascending order.
func (g *Graph) Nodes() []int {
	ids := make([]int, len(g.adj))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Neighbors returns the neighbors of id in ascending order, or nil if id is
// not a node. The returned slice must not be modified.
func (g *Graph) Neighbors(id int) []int {
	if !g.HasNode(id) {
		return nil
	}
	return g.adj[id]
}

// Degree returns the number of neighbors of id.
func (g *Graph) Degree(id int) int { return len(g.Neighbors(id)) }

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	if !g.HasNode(u) || !g.HasNode(v) {
		return false
	}
	_, found := slices.BinarySearch(g.adj[u], v)
	return found
}

// Edges returns all edges with U < V, sorted.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Undirected returns a gonum view of the graph. Node IDs in the view are the
// same integers as in g.
func (g *Graph) Undirected() gonum.Undirected {
	if g.g == nil {
		return simple.NewUndirectedGraph()
	}
	return g.g
}

// String returns the summary line logged at startup.
func (g *Graph) String() string {
	return fmt.Sprintf("Nodes: %d, Edges: %d", g.NodeCount(), g.EdgeCount())
}
