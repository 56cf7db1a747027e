// Package coloring assigns colors to graph nodes so that no edge joins two
// nodes of the same color.
package coloring

import (
	"github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
)

// Assignment maps each node (by index) to a color index. Colors are the
// contiguous range 0..NumColors()-1.
type Assignment []int

// NumColors returns the number of distinct colors used.
func (a Assignment) NumColors() int {
	k := 0
	for _, c := range a {
		if c+1 > k {
			k = c + 1
		}
	}
	return k
}

// Classes groups nodes by color. Classes()[c] lists the nodes with color c
// in ascending order.
func (a Assignment) Classes() [][]int {
	out := make([][]int, a.NumColors())
	for node, c := range a {
		out[c] = append(out[c], node)
	}
	return out
}

// Greedy colors g by visiting nodes in ascending identity order and giving
// each the smallest color not used by an already-colored neighbor. It never
// uses more than maxDegree+1 colors.
func Greedy(g *graph.Graph) Assignment {
	n := g.NodeCount()
	a := make(Assignment, n)
	for i := range a {
		a[i] = -1
	}

	for v := 0; v < n; v++ {
		nbrs := g.Neighbors(v)
		// A node with d neighbors always finds a free color in 0..d.
		taken := make([]bool, len(nbrs)+1)
		for _, nb := range nbrs {
			if c := a[nb]; c >= 0 && c < len(taken) {
				taken[c] = true
			}
		}
		c := 0
		for taken[c] {
			c++
		}
		a[v] = c
	}
	return a
}

// Validate checks that a is a proper coloring of g. It returns an
// INVALID_COLORING error naming the first offending node or edge.
func Validate(g *graph.Graph, a Assignment) error {
	if len(a) != g.NodeCount() {
		return errors.New(errors.ErrCodeInvalidColoring,
			"assignment covers %d nodes, graph has %d", len(a), g.NodeCount())
	}
	for node, c := range a {
		if c < 0 {
			return errors.New(errors.ErrCodeInvalidColoring, "node %d is uncolored", node)
		}
	}
	for _, e := range g.Edges() {
		if a[e.U] == a[e.V] {
			return errors.New(errors.ErrCodeInvalidColoring,
				"edge %s joins two nodes of color %d", e, a[e.U])
		}
	}
	return nil
}
