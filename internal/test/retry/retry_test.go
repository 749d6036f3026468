package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"smeta-backend/internal/retry"
)

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	p := retry.Policy{MaxAttempts: 3, Sleep: func(time.Duration) {}}

	err := p.Do(context.Background(), func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversAfterTransientFailure(t *testing.T) {
	calls := 0
	var slept []time.Duration
	p := retry.Policy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Sleep:       func(d time.Duration) { slept = append(slept, d) },
	}

	err := p.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("storage unavailable")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, slept)
}

func TestDo_ExhaustsAttemptBudget(t *testing.T) {
	calls := 0
	p := retry.Policy{MaxAttempts: 3, Sleep: func(time.Duration) {}}
	failure := errors.New("storage unavailable")

	err := p.Do(context.Background(), func() error {
		calls++
		return failure
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestDo_NonRetryableErrorStopsImmediately(t *testing.T) {
	calls := 0
	fatal := errors.New("bucket does not exist")
	p := retry.Policy{
		MaxAttempts: 5,
		Retryable:   func(err error) bool { return !errors.Is(err, fatal) },
		Sleep:       func(time.Duration) {},
	}

	err := p.Do(context.Background(), func() error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := retry.Policy{MaxAttempts: 3, Sleep: func(time.Duration) {}}

	err := p.Do(ctx, func() error {
		t.Fatal("fn should not run after cancellation")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_ZeroAttemptsStillRunsOnce(t *testing.T) {
	calls := 0
	p := retry.Policy{Sleep: func(time.Duration) {}}

	err := p.Do(context.Background(), func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}
