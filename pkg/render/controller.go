package render

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphwalk/pkg/analysis"
	"github.com/matzehuels/graphwalk/pkg/animate"
	"github.com/matzehuels/graphwalk/pkg/coloring"
	"github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/observability"
	"github.com/matzehuels/graphwalk/pkg/traverse"
)

// ErrAnimationInProgress is returned by [Controller.BeginAnimation] and
// [Controller.ApplyColoring] while an animation is running. Compare with
// errors.Is.
var ErrAnimationInProgress = errors.New(errors.ErrCodeAnimationInProgress,
	"Animation is already running. Wait until it finishes.")

// Frame titles for static compositions.
const (
	TitleColoring = "Greedy Coloring Result"
	TitleClique   = "Maximum Clique Highlighted"
)

// State is the controller's composition state.
type State int

const (
	// Idle shows the base palette only.
	Idle State = iota
	// Composed shows a coloring and/or clique highlight.
	Composed
	// Animating is playing a traversal session.
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composed:
		return "composed"
	case Animating:
		return "animating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// stepMark is the transient highlight of one node during an animation.
type stepMark uint8

const (
	unmarked stepMark = iota
	markVisited
	markCurrent
)

// Controller owns the layered render state for one graph and serializes
// animations. All methods are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex // guards everything below
	graph    *graph.Graph
	palette  Palette
	coloring coloring.Assignment // nil when cleared
	clique   analysis.Clique     // nil when cleared
	steps    []stepMark          // transient layer, index = node
	session  *animate.Session
	state    State
	title    string
	seq      uint64

	drawMu    sync.Mutex // serializes calls into drawer
	drawer    Drawer
	scheduler *animate.Scheduler
	logger    *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithPalette overrides DefaultPalette.
func WithPalette(p Palette) Option { return func(c *Controller) { c.palette = p } }

// WithDrawer sets the drawing surface. The default discards frames.
func WithDrawer(d Drawer) Option { return func(c *Controller) { c.drawer = d } }

// WithScheduler sets the animation scheduler.
func WithScheduler(s *animate.Scheduler) Option { return func(c *Controller) { c.scheduler = s } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// NewController creates an Idle controller for g.
func NewController(g *graph.Graph, opts ...Option) *Controller {
	c := &Controller{
		graph:   g,
		palette: DefaultPalette(),
		steps:   make([]stepMark, g.NodeCount()),
		drawer:  Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.scheduler == nil {
		c.scheduler = animate.NewScheduler(animate.DefaultInterval, c.logger)
	}
	return c
}

// Graph returns the graph being rendered.
func (c *Controller) Graph() *graph.Graph { return c.graph }

// Palette returns the palette in use.
func (c *Controller) Palette() Palette { return c.palette }

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Animating reports whether an animation session is active.
func (c *Controller) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// Session returns the active session, or nil.
func (c *Controller) Session() *animate.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Snapshot composes the current state without drawing it.
func (c *Controller) Snapshot() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Frame{Seq: c.seq, Colors: c.composeLocked(), Title: c.title}
}

// ComposeColors returns the color of every node with all layers applied.
func (c *Controller) ComposeColors() []Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composeLocked()
}

// composeLocked layers base < coloring < clique < steps.
func (c *Controller) composeLocked() []Color {
	out := make([]Color, c.graph.NodeCount())
	for i := range out {
		out[i] = c.palette.Base
	}
	for node, class := range c.coloring {
		out[node] = c.palette.ClassColor(class)
	}
	for _, node := range c.clique {
		out[node] = c.palette.Clique
	}
	for node, m := range c.steps {
		switch m {
		case markVisited:
			out[node] = c.palette.Visited
		case markCurrent:
			out[node] = c.palette.Current
		}
	}
	return out
}

// update applies fn under the state lock, then draws the composed result.
// fn returns the frame title. If fn fails nothing is drawn.
func (c *Controller) update(final bool, fn func() (string, error)) error {
	c.drawMu.Lock()
	defer c.drawMu.Unlock()

	c.mu.Lock()
	title, err := fn()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.title = title
	c.seq++
	f := Frame{Seq: c.seq, Colors: c.composeLocked(), Title: title, Final: final}
	c.mu.Unlock()

	return c.draw(f)
}

func (c *Controller) draw(f Frame) error {
	start := time.Now()
	err := c.drawer.Draw(f)
	observability.Render().OnDraw(f.Title, time.Since(start), err)
	if err != nil {
		c.logger.Warn("draw failed", "seq", f.Seq, "title", f.Title, "err", err)
	}
	return err
}

// dropStepsLocked clears the highlight left by a finished animation. While a
// session runs its steps stay visible over every other layer.
func (c *Controller) dropStepsLocked() {
	if c.session == nil {
		clear(c.steps)
	}
}

// settleLocked picks Idle or Composed from the stored layers unless an
// animation is running. A finished animation's highlight counts as composed.
func (c *Controller) settleLocked() {
	switch {
	case c.session != nil:
		c.state = Animating
	case c.coloring != nil || c.clique != nil || c.markedLocked():
		c.state = Composed
	default:
		c.state = Idle
	}
}

func (c *Controller) markedLocked() bool {
	return slices.ContainsFunc(c.steps, func(m stepMark) bool { return m != unmarked })
}

// SetBaseOnly clears the coloring and clique layers and draws the base
// palette. It is valid in every state; a running animation keeps playing.
func (c *Controller) SetBaseOnly() error {
	return c.update(false, func() (string, error) {
		c.coloring = nil
		c.clique = nil
		c.dropStepsLocked()
		c.settleLocked()
		if c.session != nil {
			return c.title, nil
		}
		return "", nil
	})
}

// ApplyColoring validates a, stores it as the coloring layer, clears the
// clique layer and draws. It fails with INVALID_COLORING, storing nothing,
// if a is not a proper coloring, and with [ErrAnimationInProgress] while an
// animation runs.
func (c *Controller) ApplyColoring(a coloring.Assignment) error {
	return c.update(false, func() (string, error) {
		if c.session != nil {
			return "", ErrAnimationInProgress
		}
		if err := coloring.Validate(c.graph, a); err != nil {
			observability.Render().OnCompositionError("coloring", err)
			c.logger.Error("coloring rejected", "err", err)
			return "", err
		}
		c.coloring = slices.Clone(a)
		c.clique = nil
		c.dropStepsLocked()
		c.settleLocked()
		return TitleColoring, nil
	})
}

// ApplyClique stores nodes as the clique layer and draws. The coloring
// layer is kept; clique members are drawn over it.
func (c *Controller) ApplyClique(nodes []int) error {
	return c.update(false, func() (string, error) {
		for _, n := range nodes {
			if err := errors.ValidateNode(n, c.graph.NodeCount()); err != nil {
				observability.Render().OnCompositionError("clique", err)
				return "", err
			}
		}
		c.clique = slices.Clone(nodes)
		c.dropStepsLocked()
		c.settleLocked()
		return TitleClique, nil
	})
}

// BeginAnimation starts playing result. It fails with
// [ErrAnimationInProgress] if a session is already active, leaving that
// session untouched. Otherwise it clears the coloring and clique layers and
// hands a new session to the scheduler. ctx bounds the animation's
// lifetime.
func (c *Controller) BeginAnimation(ctx context.Context, result traverse.Result, mode traverse.Mode) (*animate.Session, error) {
	c.mu.Lock()
	if c.session != nil {
		active := c.session
		c.mu.Unlock()
		observability.Animation().OnAnimationRejected(ctx, string(mode))
		c.logger.Debug("animation rejected", "mode", mode, "active", active.ID)
		return nil, ErrAnimationInProgress
	}

	s := animate.NewSession(mode, result)
	c.session = s
	c.coloring = nil
	c.clique = nil
	clear(c.steps)
	c.state = Animating
	c.mu.Unlock()

	c.scheduler.Play(ctx, s, c)
	return s, nil
}

// PlayFrame implements animate.Player.
func (c *Controller) PlayFrame(s *animate.Session, index int) error {
	return c.update(false, func() (string, error) {
		if c.session != s {
			return "", fmt.Errorf("session %s is not active", s.ID)
		}
		if index == 0 {
			return string(s.Mode), nil
		}
		step := s.Result[index-1]
		if index > 1 {
			c.steps[s.Result[index-2].Node] = markVisited
		}
		c.steps[step.Node] = markCurrent
		return fmt.Sprintf("%s - Step %d: Node %d (Depth %d)", s.Mode, index, step.Node, step.Depth), nil
	})
}

// Complete implements animate.Player. On normal completion every traversed
// node is drawn as visited under a "<MODE> Completed" title, and stays so
// until the next composition. A canceled session leaves no marks behind.
// The session is then released.
func (c *Controller) Complete(s *animate.Session, canceled bool) {
	if !canceled {
		_ = c.update(true, func() (string, error) {
			if c.session != s {
				return "", fmt.Errorf("session %s is not active", s.ID)
			}
			for _, step := range s.Result {
				c.steps[step.Node] = markVisited
			}
			return fmt.Sprintf("%s Completed", s.Mode), nil
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == s {
		c.session = nil
		if canceled {
			clear(c.steps)
			c.title = ""
		}
		c.settleLocked()
	}
}
