package actions

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/graphwalk/pkg/analysis"
	"github.com/matzehuels/graphwalk/pkg/coloring"
	"github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/observability"
	"github.com/matzehuels/graphwalk/pkg/render"
	"github.com/matzehuels/graphwalk/pkg/traverse"
)

const tracerName = "github.com/matzehuels/graphwalk/pkg/actions"

// Runner executes actions against one graph and its render controller.
// It is safe for concurrent use; the controller serializes render state.
type Runner struct {
	graph  *graph.Graph
	ctrl   *render.Controller
	start  int
	logger *log.Logger
	tracer trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithStart sets the traversal start node (default 0).
func WithStart(node int) Option { return func(r *Runner) { r.start = node } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(r *Runner) { r.logger = l } }

// NewRunner creates a runner for the controller's graph.
func NewRunner(ctrl *render.Controller, opts ...Option) *Runner {
	r := &Runner{
		graph:  ctrl.Graph(),
		ctrl:   ctrl,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Controller returns the render controller the runner drives.
func (r *Runner) Controller() *render.Controller { return r.ctrl }

// Summary returns the graph summary line, e.g. "Nodes: 34, Edges: 78".
func (r *Runner) Summary() string { return r.graph.String() }

// begin opens a span and fires the analysis start hook. The returned func
// closes both.
func (r *Runner) begin(ctx context.Context, kind string) (context.Context, func(size int, err error)) {
	ctx, span := r.tracer.Start(ctx, "actions."+kind, trace.WithAttributes(
		attribute.String("graphwalk.action", kind),
		attribute.Int("graphwalk.nodes", r.graph.NodeCount()),
	))
	hooks := observability.Analysis()
	hooks.OnAnalysisStart(ctx, kind, r.graph.NodeCount())
	start := time.Now()

	return ctx, func(size int, err error) {
		elapsed := time.Since(start)
		span.SetAttributes(attribute.Int("graphwalk.result_size", size))
		if err != nil && !errors.Recoverable(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		hooks.OnAnalysisComplete(ctx, kind, size, elapsed, err)
		r.logger.Debug("action finished", "action", kind, "size", size, "elapsed", elapsed, "err", err)
	}
}

// RunBFS computes a breadth-first traversal and starts animating it.
func (r *Runner) RunBFS(ctx context.Context) (TraversalReport, error) {
	return r.runTraversal(ctx, traverse.BFS)
}

// RunDFS computes a depth-first traversal and starts animating it.
func (r *Runner) RunDFS(ctx context.Context) (TraversalReport, error) {
	return r.runTraversal(ctx, traverse.DFS)
}

// RunTraversal runs the traversal named by mode.
func (r *Runner) RunTraversal(ctx context.Context, mode traverse.Mode) (TraversalReport, error) {
	return r.runTraversal(ctx, mode)
}

func (r *Runner) runTraversal(ctx context.Context, mode traverse.Mode) (rep TraversalReport, err error) {
	_, end := r.begin(ctx, string(mode))
	defer func() { end(len(rep.Result), err) }()

	result, err := traverse.Run(mode, r.graph, r.start)
	if err != nil {
		return TraversalReport{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "traversal")
	}
	rep = TraversalReport{Mode: mode, Start: r.start, Result: result}

	if r.graph.Empty() {
		rep.Notice = NoticeEmptyGraph
		return rep, nil
	}
	if !r.graph.HasNode(r.start) {
		return rep, errors.New(errors.ErrCodeNodeNotFound, "start node %d not in graph", r.start)
	}

	r.logger.Info("traversal", "mode", mode, "start", r.start, "visited", len(result), "max_depth", result.MaxDepth())

	s, err := r.ctrl.BeginAnimation(ctx, result, mode)
	if err != nil {
		if stderrors.Is(err, render.ErrAnimationInProgress) {
			rep.Notice = NoticeAnimationBusy
			r.logger.Warn(NoticeAnimationBusy, "mode", mode)
		}
		return rep, err
	}
	rep.Session = s
	rep.SessionID = s.ID.String()
	return rep, nil
}

// RunColoring computes a greedy coloring and draws it. While an animation
// is running the coloring is not applied and the report carries a notice.
func (r *Runner) RunColoring(ctx context.Context) (rep ColoringReport, err error) {
	_, end := r.begin(ctx, "coloring")
	defer func() { end(rep.NumColors, err) }()

	if r.ctrl.Animating() {
		r.logger.Warn(NoticeColoringBlocked)
		return ColoringReport{Notice: NoticeColoringBlocked}, render.ErrAnimationInProgress
	}

	a := coloring.Greedy(r.graph)
	if err := r.ctrl.ApplyColoring(a); err != nil {
		if stderrors.Is(err, render.ErrAnimationInProgress) {
			return ColoringReport{Notice: NoticeColoringBlocked}, err
		}
		return ColoringReport{}, err
	}

	rep = ColoringReport{Assignment: a, NumColors: a.NumColors()}
	if r.graph.Empty() {
		rep.Notice = NoticeEmptyGraph
	}
	r.logger.Info("coloring", "colors", rep.NumColors)
	return rep, nil
}

// CheckCycle reports whether the graph contains a cycle. It does not change
// what is drawn.
func (r *Runner) CheckCycle(ctx context.Context) (rep CycleReport, err error) {
	_, end := r.begin(ctx, "cycle")
	defer func() { end(len(rep.Cycle), err) }()

	cycle := analysis.FindCycle(r.graph)
	rep = CycleReport{HasCycle: cycle != nil, Cycle: cycle}
	r.logger.Info("cycle check", "has_cycle", rep.HasCycle, "witness", cycle)
	return rep, nil
}

// CheckClique finds a maximum clique and highlights it.
func (r *Runner) CheckClique(ctx context.Context) (rep CliqueReport, err error) {
	_, end := r.begin(ctx, "clique")
	defer func() { end(rep.Clique.Size(), err) }()

	c := analysis.MaximumClique(r.graph)
	if err := r.ctrl.ApplyClique(c); err != nil {
		return CliqueReport{}, err
	}

	rep = CliqueReport{Clique: c}
	if r.graph.Empty() {
		rep.Notice = NoticeEmptyGraph
	}
	r.logger.Info("clique check", "size", c.Size(), "nodes", []int(c))
	return rep, nil
}

// Clear removes the coloring and clique highlights.
func (r *Runner) Clear(ctx context.Context) error {
	_, end := r.begin(ctx, "clear")
	err := r.ctrl.SetBaseOnly()
	end(0, err)
	return err
}

// Run dispatches an action by name: "bfs", "dfs", "coloring", "cycle",
// "clique" or "clear". Clear returns a nil report.
func (r *Runner) Run(ctx context.Context, name string) (Report, error) {
	switch name {
	case "bfs":
		return r.RunBFS(ctx)
	case "dfs":
		return r.RunDFS(ctx)
	case "coloring", "color":
		return r.RunColoring(ctx)
	case "cycle":
		return r.CheckCycle(ctx)
	case "clique":
		return r.CheckClique(ctx)
	case "clear":
		return nil, r.Clear(ctx)
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown action %q", name)
}
