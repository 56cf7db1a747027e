package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. [Retry] only retries these.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Retry calls fn until it succeeds, returns a permanent error, or has been
// called attempts times. The wait before the next call starts at delay and
// doubles. A done ctx ends the wait with ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	err := fn()
	for left := max(attempts, 1) - 1; left > 0 && isRetryable(err); left-- {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
		err = fn()
	}
	return err
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
