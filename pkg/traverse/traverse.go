package traverse

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphwalk/pkg/graph"
)

// Step is one visited node and its depth.
type Step struct {
	Node  int `json:"node"`
	Depth int `json:"depth"`
}

// Result is an ordered traversal. It is empty when the start node is not in
// the graph.
type Result []Step

// Nodes returns the visit order.
func (r Result) Nodes() []int {
	out := make([]int, len(r))
	for i, s := range r {
		out[i] = s.Node
	}
	return out
}

// Depths returns node -> depth for every visited node.
func (r Result) Depths() map[int]int {
	out := make(map[int]int, len(r))
	for _, s := range r {
		out[s.Node] = s.Depth
	}
	return out
}

// MaxDepth returns the largest depth in r, or -1 when r is empty.
func (r Result) MaxDepth() int {
	deepest := -1
	for _, s := range r {
		if s.Depth > deepest {
			deepest = s.Depth
		}
	}
	return deepest
}

// Mode selects a traversal strategy.
type Mode string

const (
	BFS Mode = "BFS"
	DFS Mode = "DFS"
)

// ParseMode accepts "bfs" or "dfs" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(s)) {
	case BFS:
		return BFS, nil
	case DFS:
		return DFS, nil
	}
	return "", fmt.Errorf("unknown traversal mode %q", s)
}

// Run dispatches to [BreadthFirst] or [DepthFirst].
func Run(mode Mode, g *graph.Graph, start int) (Result, error) {
	switch mode {
	case BFS:
		return BreadthFirst(g, start), nil
	case DFS:
		return DepthFirst(g, start), nil
	}
	return nil, fmt.Errorf("unknown traversal mode %q", mode)
}

// BreadthFirst visits nodes in FIFO order from start. Nodes are marked
// visited when enqueued, so each is recorded once with its shortest-path
// distance from start.
func BreadthFirst(g *graph.Graph, start int) Result {
	if !g.HasNode(start) {
		return Result{}
	}

	visited := make([]bool, g.NodeCount())
	visited[start] = true
	queue := []Step{{Node: start}}
	out := make(Result, 0, g.NodeCount())

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)

		for _, nb := range g.Neighbors(cur.Node) {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, Step{Node: nb, Depth: cur.Depth + 1})
			}
		}
	}
	return out
}

// frame is a suspended DFS call: the node, its depth and the index of the
// next neighbor to examine.
type frame struct {
	node, depth, next int
}

// DepthFirst visits nodes in pre-order from start, examining neighbors in
// ascending order. It uses an explicit stack so path-shaped graphs of any
// length are safe.
func DepthFirst(g *graph.Graph, start int) Result {
	if !g.HasNode(start) {
		return Result{}
	}

	visited := make([]bool, g.NodeCount())
	visited[start] = true
	out := make(Result, 0, g.NodeCount())
	out = append(out, Step{Node: start})
	stack := []frame{{node: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		nbrs := g.Neighbors(top.node)

		for top.next < len(nbrs) && visited[nbrs[top.next]] {
			top.next++
		}
		if top.next == len(nbrs) {
			stack = stack[:len(stack)-1]
			continue
		}

		nb := nbrs[top.next]
		top.next++
		visited[nb] = true
		d := top.depth + 1
		out = append(out, Step{Node: nb, Depth: d})
		stack = append(stack, frame{node: nb, depth: d})
	}
	return out
}
