package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnknownBackend is returned by Open for locations no backend handles.
	ErrUnknownBackend = errors.New("unknown cache backend")

	// ErrNetwork marks backend connection failures and timeouts.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks a backend failure worth retrying.
type RetryableError struct{ Err error }

// Retryable marks err as retryable. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff controls how often and how patiently a backend call is retried.
// The delay doubles after every failed attempt.
type Backoff struct {
	Attempts int
	Initial  time.Duration
}

// DefaultBackoff tries three times, waiting 100ms and then 200ms. Cache
// lookups sit on the request path, so the budget is kept short.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 100 * time.Millisecond}

// Retry calls fn until it succeeds, fails with an error that is not
// retryable, runs out of attempts or ctx is done.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Initial

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}

// RetryWithBackoff retries fn with DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
