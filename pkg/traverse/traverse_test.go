package traverse

import (
	"slices"
	"testing"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/graphwalk/pkg/graph"
)

func pathGraph(n int) *graph.Graph {
	edges := make([]graph.Edge, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, graph.Edge{U: i, V: i + 1})
	}
	return graph.MustNew(n, edges)
}

func TestBreadthFirstSmall(t *testing.T) {
	// 0 - 1 - 3
	//  \     /
	//    2 -
	g := graph.MustNew(5, []graph.Edge{{0, 2}, {0, 1}, {1, 3}, {2, 3}})

	got := BreadthFirst(g, 0)
	want := Result{{0, 0}, {1, 1}, {2, 1}, {3, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("BreadthFirst() = %v, want %v", got, want)
	}
}

func TestDepthFirstSmall(t *testing.T) {
	g := graph.MustNew(5, []graph.Edge{{0, 2}, {0, 1}, {1, 3}, {2, 3}})

	got := DepthFirst(g, 0)
	want := Result{{0, 0}, {1, 1}, {3, 2}, {2, 3}}
	if !slices.Equal(got, want) {
		t.Errorf("DepthFirst() = %v, want %v", got, want)
	}
}

func TestInvalidStart(t *testing.T) {
	g := pathGraph(3)
	empty := graph.MustNew(0, nil)

	tests := []struct {
		name  string
		g     *graph.Graph
		start int
	}{
		{"Negative", g, -1},
		{"TooLarge", g, 3},
		{"EmptyGraph", empty, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BreadthFirst(tt.g, tt.start); len(got) != 0 {
				t.Errorf("BreadthFirst() = %v, want empty", got)
			}
			if got := DepthFirst(tt.g, tt.start); len(got) != 0 {
				t.Errorf("DepthFirst() = %v, want empty", got)
			}
		})
	}
}

func TestUnreachableOmitted(t *testing.T) {
	g := graph.MustNew(4, []graph.Edge{{0, 1}, {2, 3}})

	for _, mode := range []Mode{BFS, DFS} {
		r, err := Run(mode, g, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got := r.Nodes(); !slices.Equal(got, []int{0, 1}) {
			t.Errorf("%s nodes = %v, want [0 1]", mode, got)
		}
	}
}

func TestBreadthFirstDepthIsShortestPath(t *testing.T) {
	g := graph.KarateClub()
	shortest := path.DijkstraFrom(simple.Node(0), g.Undirected())

	r := BreadthFirst(g, 0)
	if len(r) != 34 {
		t.Fatalf("len = %d, want 34", len(r))
	}
	for _, s := range r {
		if want := int(shortest.WeightTo(int64(s.Node))); s.Depth != want {
			t.Errorf("depth(%d) = %d, want %d", s.Node, s.Depth, want)
		}
	}
}

func TestBreadthFirstKarateOrder(t *testing.T) {
	r := BreadthFirst(graph.KarateClub(), 0)

	wantPrefix := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12, 13, 17, 19, 21, 31, 30, 9, 27, 28, 32, 16, 33, 24, 25}
	if got := r.Nodes()[:len(wantPrefix)]; !slices.Equal(got, wantPrefix) {
		t.Errorf("order prefix = %v, want %v", got, wantPrefix)
	}
	if d := r.Depths()[33]; d != 2 {
		t.Errorf("depth(33) = %d, want 2", d)
	}
	if r.MaxDepth() != 3 {
		t.Errorf("MaxDepth() = %d, want 3", r.MaxDepth())
	}
}

func TestDepthFirstIsPreorder(t *testing.T) {
	g := graph.KarateClub()
	r := DepthFirst(g, 0)

	if r[0] != (Step{Node: 0, Depth: 0}) {
		t.Fatalf("first step = %v, want {0 0}", r[0])
	}

	// In a pre-order listing the parent of each step is the closest earlier
	// step one level up.
	for i := 1; i < len(r); i++ {
		parent := -1
		for j := i - 1; j >= 0; j-- {
			if r[j].Depth == r[i].Depth-1 {
				parent = r[j].Node
				break
			}
		}
		if parent < 0 || !g.HasEdge(parent, r[i].Node) {
			t.Errorf("step %d (%v) has no tree parent", i, r[i])
		}
	}
}

func TestReachableSetsAgree(t *testing.T) {
	graphs := map[string]*graph.Graph{
		"karate": graph.KarateClub(),
		"split":  graph.MustNew(6, []graph.Edge{{0, 1}, {1, 2}, {3, 4}, {4, 5}}),
		"path":   pathGraph(10),
	}

	for name, g := range graphs {
		for _, start := range g.Nodes() {
			b := BreadthFirst(g, start).Nodes()
			d := DepthFirst(g, start).Nodes()
			slices.Sort(b)
			slices.Sort(d)
			if !slices.Equal(b, d) {
				t.Errorf("%s from %d: BFS set %v != DFS set %v", name, start, b, d)
			}
			if len(slices.Compact(slices.Clone(b))) != len(b) {
				t.Errorf("%s from %d: duplicate visits", name, start)
			}
		}
	}
}

func TestDepthFirstLongPath(t *testing.T) {
	const n = 200000
	r := DepthFirst(pathGraph(n), 0)
	if len(r) != n {
		t.Fatalf("len = %d, want %d", len(r), n)
	}
	if last := r[n-1]; last.Node != n-1 || last.Depth != n-1 {
		t.Errorf("last step = %v, want {%d %d}", last, n-1, n-1)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"bfs", BFS, false},
		{"DFS", DFS, false},
		{"dijkstra", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}
