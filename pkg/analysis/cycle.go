package analysis

import "github.com/matzehuels/graphwalk/pkg/graph"

type cycleFrame struct {
	node, parent, next int
}

// HasCycle reports whether g contains a cycle. Every connected component is
// searched.
func HasCycle(g *graph.Graph) bool {
	return FindCycle(g) != nil
}

// FindCycle returns the nodes of the first cycle found, in path order, or nil
// if g is a forest. The cycle closes from the last element back to the
// first.
func FindCycle(g *graph.Graph) []int {
	n := g.NodeCount()
	discovered := make([]bool, n)
	onStack := make([]bool, n)

	for root := 0; root < n; root++ {
		if discovered[root] {
			continue
		}

		discovered[root] = true
		onStack[root] = true
		stack := []cycleFrame{{node: root, parent: -1}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			nbrs := g.Neighbors(top.node)

			if top.next == len(nbrs) {
				onStack[top.node] = false
				stack = stack[:len(stack)-1]
				continue
			}

			nb := nbrs[top.next]
			top.next++

			if nb == top.parent {
				continue
			}
			if onStack[nb] {
				return pathFrom(stack, nb)
			}
			if !discovered[nb] {
				discovered[nb] = true
				onStack[nb] = true
				stack = append(stack, cycleFrame{node: nb, parent: top.node, next: 0})
			}
		}
	}
	return nil
}

// pathFrom returns the stack nodes from ancestor to the top.
func pathFrom(stack []cycleFrame, ancestor int) []int {
	for i, f := range stack {
		if f.node == ancestor {
			out := make([]int, 0, len(stack)-i)
			for _, f := range stack[i:] {
				out = append(out, f.node)
			}
			return out
		}
	}
	return nil
}
