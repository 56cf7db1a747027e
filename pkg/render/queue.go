package render

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by [Queue.Draw] after [Queue.Close].
var ErrQueueClosed = errors.New("frame queue closed")

// DefaultQueueSize bounds a Queue created with size 0.
const DefaultQueueSize = 64

// Queue is a Drawer that buffers frames for a single consumer goroutine.
// When more than its size are pending, the oldest frames are dropped so a
// slow surface skips ahead instead of blocking the producer.
type Queue struct {
	mu      sync.Mutex
	pending []Frame
	size    int
	dropped int
	closed  bool
	ready   chan struct{}
}

// NewQueue creates a queue holding at most size frames.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{size: size, ready: make(chan struct{}, 1)}
}

// Draw enqueues a copy of f. It never blocks.
func (q *Queue) Draw(f Frame) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.pending = append(q.pending, f.Clone())
	if over := len(q.pending) - q.size; over > 0 {
		q.pending = q.pending[over:]
		q.dropped += over
	}
	q.mu.Unlock()
	q.signal()
	return nil
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Next blocks until a frame is available and returns it. It returns false
// once the queue is closed and drained, or when ctx is done.
func (q *Queue) Next(ctx context.Context) (Frame, bool) {
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			f := q.pending[0]
			q.pending = q.pending[1:]
			q.mu.Unlock()
			return f, true
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return Frame{}, false
		}

		select {
		case <-q.ready:
		case <-ctx.Done():
			return Frame{}, false
		}
	}
}

// TryNext returns the next frame without blocking.
func (q *Queue) TryNext() (Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return Frame{}, false
	}
	f := q.pending[0]
	q.pending = q.pending[1:]
	return f, true
}

// Run drains the queue into d until the queue is closed or ctx is done.
// Draw errors are passed to onErr when it is non-nil.
func (q *Queue) Run(ctx context.Context, d Drawer, onErr func(Frame, error)) {
	for {
		f, ok := q.Next(ctx)
		if !ok {
			return
		}
		if err := d.Draw(f); err != nil && onErr != nil {
			onErr(f, err)
		}
	}
}

// Len returns the number of pending frames.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Dropped returns how many frames were discarded because the queue was full.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Close stops accepting frames. Pending frames are still returned by Next.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}
