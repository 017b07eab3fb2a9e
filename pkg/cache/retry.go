package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a backing service that could not be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// RetryableError marks an error worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so RetryWithBackoff tries again. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff is a retry policy: Attempts tries, waiting Delay after the first
// failure and doubling each time.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff bounds a Redis connect to roughly 750ms of waiting so the
// CLI falls back to the file cache quickly.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 250 * time.Millisecond}

// Retry calls fn until it succeeds, returns a non-retryable error, runs out
// of attempts or ctx ends. It returns the last error seen.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// RetryWithBackoff is DefaultBackoff.Retry.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
