package animate

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/graphwalk/pkg/traverse"
)

// Session is one traversal animation.
type Session struct {
	ID      uuid.UUID
	Mode    traverse.Mode
	Result  traverse.Result
	Created time.Time

	frame    atomic.Int64
	done     chan struct{}
	once     sync.Once
	canceled atomic.Bool
}

// NewSession creates a session for result. It does not start playing.
func NewSession(mode traverse.Mode, result traverse.Result) *Session {
	s := &Session{
		ID:      uuid.New(),
		Mode:    mode,
		Result:  result,
		Created: time.Now(),
		done:    make(chan struct{}),
	}
	s.frame.Store(-1)
	return s
}

// Frames returns the number of frames the session plays: one per step plus
// the initial unhighlighted frame.
func (s *Session) Frames() int { return len(s.Result) + 1 }

// Frame returns the index of the last frame played, or -1 before the first.
func (s *Session) Frame() int { return int(s.frame.Load()) }

// Done is closed when the session is released.
func (s *Session) Done() <-chan struct{} { return s.done }

// Running reports whether the session has not been released yet.
func (s *Session) Running() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Canceled reports whether the session was stopped before its last frame.
func (s *Session) Canceled() bool { return s.canceled.Load() }

// Wait blocks until the session is released.
func (s *Session) Wait() { <-s.done }

func (s *Session) setFrame(i int) { s.frame.Store(int64(i)) }

func (s *Session) release(canceled bool) {
	s.once.Do(func() {
		s.canceled.Store(canceled)
		close(s.done)
	})
}
