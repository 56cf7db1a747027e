package animate

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphwalk/pkg/observability"
)

// DefaultInterval is the delay between frames.
const DefaultInterval = 700 * time.Millisecond

// Player renders the frames of a session.
type Player interface {
	// PlayFrame shows frame index of s. Index 0 is the unhighlighted frame,
	// index i > 0 highlights s.Result[i-1].
	PlayFrame(s *Session, index int) error

	// Complete is called once after the last frame, or when the context is
	// canceled first. The player must stop treating s as active before it
	// returns.
	Complete(s *Session, canceled bool)
}

// Scheduler plays sessions at a fixed interval.
type Scheduler struct {
	interval time.Duration
	logger   *log.Logger
}

// NewScheduler creates a scheduler. A non-positive interval selects
// DefaultInterval; a nil logger discards output.
func NewScheduler(interval time.Duration, logger *log.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{interval: interval, logger: logger}
}

// Interval returns the delay between frames.
func (sch *Scheduler) Interval() time.Duration { return sch.interval }

// Play runs s on a new goroutine and returns immediately.
func (sch *Scheduler) Play(ctx context.Context, s *Session, p Player) {
	go sch.Run(ctx, s, p)
}

// Run plays every frame of s and blocks until the session is released.
// Frame 0 is played immediately, each later frame one interval after the
// previous one.
func (sch *Scheduler) Run(ctx context.Context, s *Session, p Player) {
	hooks := observability.Animation()
	mode := string(s.Mode)
	start := time.Now()
	canceled := false

	defer func() {
		p.Complete(s, canceled)
		s.release(canceled)
		hooks.OnAnimationComplete(ctx, mode, s.Frame()+1, time.Since(start), canceled)
		sch.logger.Debug("animation finished", "session", s.ID, "mode", mode, "canceled", canceled, "elapsed", time.Since(start).Round(time.Millisecond))
	}()

	sch.logger.Debug("animation started", "session", s.ID, "mode", mode, "frames", s.Frames(), "interval", sch.interval)
	hooks.OnAnimationStart(ctx, mode, len(s.Result))

	play := func(i int) {
		s.setFrame(i)
		if err := p.PlayFrame(s, i); err != nil {
			sch.logger.Warn("frame draw failed", "session", s.ID, "frame", i, "err", err)
		}
		hooks.OnFrame(ctx, mode, i)
	}

	if ctx.Err() != nil {
		canceled = true
		return
	}
	play(0)
	if s.Frames() == 1 {
		return
	}

	ticker := time.NewTicker(sch.interval)
	defer ticker.Stop()

	for i := 1; i < s.Frames(); i++ {
		select {
		case <-ctx.Done():
			canceled = true
			return
		case <-ticker.C:
			play(i)
		}
	}
}
