package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound marks a resource that is neither cached nor available
	// from the network, such as a precache asset answering 404.
	ErrNotFound = errors.New("not found")

	// ErrNetwork marks connection failures and 5xx responses.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error that [Retry] should try again.
type RetryableError struct{ Err error }

// Retryable marks err for retry. A nil err stays nil.
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

// Retry calls fn until it succeeds, returns an error not marked [Retryable],
// or has been called attempts times. The delay before the next call doubles
// each time. Cancelling ctx ends the wait with ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is Retry with three attempts starting at one second, the
// policy used for connecting to Redis.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
