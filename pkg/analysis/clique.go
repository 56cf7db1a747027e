package analysis

import (
	"slices"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/graphwalk/pkg/graph"
)

// Clique is a set of pairwise adjacent nodes in ascending order.
type Clique []int

// Size returns the number of members.
func (c Clique) Size() int { return len(c) }

// Contains reports whether id is a member.
func (c Clique) Contains(id int) bool {
	_, found := slices.BinarySearch(c, id)
	return found
}

// MaximalCliques returns every maximal clique of g, each sorted ascending,
// ordered by descending size and then lexicographically.
func MaximalCliques(g *graph.Graph) []Clique {
	if g.Empty() {
		return nil
	}

	raw := topo.BronKerbosch(g.Undirected())
	out := make([]Clique, 0, len(raw))
	for _, members := range raw {
		c := make(Clique, len(members))
		for i, n := range members {
			c[i] = int(n.ID())
		}
		slices.Sort(c)
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b Clique) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return slices.Compare(a, b)
	})
	return out
}

// MaximumClique returns a maximal clique of the largest size in g. Ties go to
// the lexicographically smallest member list. An empty graph yields an
// empty clique.
func MaximumClique(g *graph.Graph) Clique {
	all := MaximalCliques(g)
	if len(all) == 0 {
		return Clique{}
	}
	return all[0]
}

// IsClique reports whether nodes are distinct members of g that are
// pairwise adjacent.
func IsClique(g *graph.Graph, nodes []int) bool {
	for i, u := range nodes {
		if !g.HasNode(u) {
			return false
		}
		for _, v := range nodes[i+1:] {
			if u == v || !g.HasEdge(u, v) {
				return false
			}
		}
	}
	return true
}

// IsMaximal reports whether nodes is a clique that no other node of g
// extends.
func IsMaximal(g *graph.Graph, nodes []int) bool {
	if !IsClique(g, nodes) {
		return false
	}
	for _, cand := range g.Nodes() {
		if slices.Contains(nodes, cand) {
			continue
		}
		extends := true
		for _, m := range nodes {
			if !g.HasEdge(cand, m) {
				extends = false
				break
			}
		}
		if extends {
			return false
		}
	}
	return true
}
