// Package retry implements a small bounded-retry policy, kept separate from
// the upload code so tests can drive it with a fake clock.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy retries an operation a fixed number of times with a fixed delay
// between attempts. A nil Retryable treats every error as transient. Sleep
// defaults to time.Sleep.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
	Sleep       func(time.Duration)
}

// Do runs fn until it succeeds, a non-retryable error occurs, the attempt
// budget is exhausted, or ctx is cancelled.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		lastErr = err
		if i < attempts-1 {
			sleep(p.Delay)
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
