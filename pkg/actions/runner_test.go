package actions

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/graphwalk/pkg/animate"
	"github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/render"
)

func newRunner(g *graph.Graph, interval time.Duration) *Runner {
	ctrl := render.NewController(g, render.WithScheduler(animate.NewScheduler(interval, nil)))
	return NewRunner(ctrl)
}

func waitIdle(r *Runner) {
	if s := r.Controller().Session(); s != nil {
		s.Wait()
	}
}

func TestSummary(t *testing.T) {
	r := newRunner(graph.KarateClub(), time.Millisecond)
	if got := r.Summary(); got != "Nodes: 34, Edges: 78" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestRunBFSKarate(t *testing.T) {
	r := newRunner(graph.KarateClub(), time.Millisecond)

	rep, err := r.RunBFS(context.Background())
	if err != nil {
		t.Fatalf("RunBFS() = %v", err)
	}
	defer waitIdle(r)

	if len(rep.Result) != 34 {
		t.Errorf("visited %d nodes, want 34", len(rep.Result))
	}
	if rep.SessionID == "" {
		t.Error("SessionID is empty")
	}

	lines := rep.Lines()
	if lines[0] != "=== BFS ===" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "BFS order: [0, 1, 2, 3, 4,") || !strings.HasSuffix(lines[1], "(34 nodes)") {
		t.Errorf("lines[1] = %q", lines[1])
	}
}

func TestRunDFSKarate(t *testing.T) {
	r := newRunner(graph.KarateClub(), time.Millisecond)

	rep, err := r.RunDFS(context.Background())
	if err != nil {
		t.Fatalf("RunDFS() = %v", err)
	}
	defer waitIdle(r)

	if rep.Mode != "DFS" || len(rep.Result) != 34 {
		t.Errorf("RunDFS() = %s with %d steps", rep.Mode, len(rep.Result))
	}
	if rep.Lines()[0] != "=== DFS ===" {
		t.Errorf("header = %q", rep.Lines()[0])
	}
}

func TestBusyAnimation(t *testing.T) {
	r := newRunner(graph.KarateClub(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		waitIdle(r)
	}()

	if _, err := r.RunBFS(ctx); err != nil {
		t.Fatalf("RunBFS() = %v", err)
	}

	rep, err := r.RunDFS(ctx)
	if err == nil || !errors.Recoverable(err) {
		t.Fatalf("RunDFS() during animation = %v, want recoverable error", err)
	}
	lines := rep.Lines()
	if lines[len(lines)-1] != NoticeAnimationBusy {
		t.Errorf("last line = %q, want notice", lines[len(lines)-1])
	}

	crep, err := r.RunColoring(ctx)
	if !errors.Is(err, errors.ErrCodeAnimationInProgress) {
		t.Errorf("RunColoring() during animation = %v", err)
	}
	if got := crep.Lines(); len(got) != 1 || got[0] != NoticeColoringBlocked {
		t.Errorf("RunColoring() lines = %v", got)
	}
}

func TestRunColoring(t *testing.T) {
	r := newRunner(graph.KarateClub(), time.Millisecond)

	rep, err := r.RunColoring(context.Background())
	if err != nil {
		t.Fatalf("RunColoring() = %v", err)
	}

	lines := rep.Lines()
	if lines[0] != "=== Greedy Coloring ===" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[1] != "Colors used: "+strconv.Itoa(rep.NumColors) {
		t.Errorf("lines[1] = %q", lines[1])
	}
	if len(lines) != 2+34 {
		t.Errorf("got %d lines, want %d", len(lines), 36)
	}
	if lines[2] != "Node 0: Color 0" {
		t.Errorf("lines[2] = %q", lines[2])
	}
	if got := r.Controller().Snapshot().Title; got != render.TitleColoring {
		t.Errorf("title = %q", got)
	}
}

func TestCheckCycle(t *testing.T) {
	tests := []struct {
		name string
		g    *graph.Graph
		want string
	}{
		{"Karate", graph.KarateClub(), "Graph has cycle: true"},
		{"Path", graph.MustNew(3, []graph.Edge{{0, 1}, {1, 2}}), "Graph has cycle: false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRunner(tt.g, time.Millisecond)
			rep, err := r.CheckCycle(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			lines := rep.Lines()
			if lines[0] != "=== Cycle Check ===" || lines[1] != tt.want {
				t.Errorf("Lines() = %v", lines)
			}
		})
	}
}

func TestCheckClique(t *testing.T) {
	r := newRunner(graph.KarateClub(), time.Millisecond)

	rep, err := r.CheckClique(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"=== Clique Check ===",
		"Maximum clique size: 5",
		"Clique nodes: [0, 1, 2, 3, 7]",
	}
	lines := rep.Lines()
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}

	f := r.Controller().Snapshot()
	red := r.Controller().Palette().Clique
	for _, n := range rep.Clique {
		if f.Colors[n] != red {
			t.Errorf("clique member %d drawn %v", n, f.Colors[n])
		}
	}
}

func TestClear(t *testing.T) {
	r := newRunner(graph.KarateClub(), time.Millisecond)
	ctx := context.Background()

	_, _ = r.RunColoring(ctx)
	_, _ = r.CheckClique(ctx)
	if err := r.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	if r.Controller().State() != render.Idle {
		t.Errorf("State() = %v, want idle", r.Controller().State())
	}
}

func TestEmptyGraph(t *testing.T) {
	r := newRunner(graph.MustNew(0, nil), time.Millisecond)
	ctx := context.Background()

	trep, err := r.RunBFS(ctx)
	if err != nil || trep.Notice != NoticeEmptyGraph {
		t.Errorf("RunBFS() = %+v, %v", trep, err)
	}
	crep, err := r.RunColoring(ctx)
	if err != nil || crep.NumColors != 0 || crep.Notice != NoticeEmptyGraph {
		t.Errorf("RunColoring() = %+v, %v", crep, err)
	}
	qrep, err := r.CheckClique(ctx)
	if err != nil || qrep.Clique.Size() != 0 {
		t.Errorf("CheckClique() = %+v, %v", qrep, err)
	}
	yrep, err := r.CheckCycle(ctx)
	if err != nil || yrep.HasCycle {
		t.Errorf("CheckCycle() = %+v, %v", yrep, err)
	}
}

func TestRunByName(t *testing.T) {
	r := newRunner(graph.KarateClub(), time.Millisecond)
	ctx := context.Background()

	rep, err := r.Run(ctx, "cycle")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rep.(CycleReport); !ok {
		t.Errorf("Run(cycle) = %T, want CycleReport", rep)
	}

	if _, err := r.Run(ctx, "teleport"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Run(teleport) = %v, want NOT_FOUND", err)
	}
}
