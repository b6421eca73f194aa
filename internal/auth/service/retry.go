package service

import (
	"context"
	"math"
	"time"
)

// RetryPolicy bounds the attempts made against a flaky dependency.
// The wait before attempt n+1 is BaseDelay * n * Multiplier^(n-1).
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy returns three attempts with 0.5s and 1s waits.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond, Multiplier: 1.0}
}

// Delay returns the wait after the given number of failed attempts (1-based).
func (p RetryPolicy) Delay(failedAttempts int) time.Duration {
	if failedAttempts < 1 {
		return 0
	}
	multiplier := p.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	scale := float64(failedAttempts) * math.Pow(multiplier, float64(failedAttempts-1))
	return time.Duration(float64(p.BaseDelay) * scale)
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Retry runs fn until it succeeds, returns a permanent error, or the policy is exhausted.
// Waits between attempts stop early when ctx is done. It returns the number of attempts made
// and the last error.
func Retry(
	ctx context.Context,
	policy RetryPolicy,
	isPermanent func(error) bool,
	fn func(ctx context.Context, attempt int) error,
) (int, error) {
	var lastErr error

	maxAttempts := policy.attempts()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return attempt, nil
		}
		if isPermanent != nil && isPermanent(lastErr) {
			return attempt, lastErr
		}
		if attempt == maxAttempts {
			return attempt, lastErr
		}
		if err := wait(ctx, policy.Delay(attempt)); err != nil {
			return attempt, lastErr
		}
	}

	return maxAttempts, lastErr
}

// wait blocks for d or until ctx is done, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
