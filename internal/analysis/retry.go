// internal/analysis/retry.go
package analysis

import (
	"context"
	"time"

	"venue-intelligence/internal/oracle"
)

// RetryPolicy retries a failed call MaxRetries times, sleeping
// BaseDelay × 2^attempt between attempts.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn until it succeeds, returns a 4xx oracle error, the retries run
// out or ctx is done.
func (p RetryPolicy) Do(ctx context.Context, sleep SleepFunc, fn func(ctx context.Context) error) error {
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if oracle.IsClientError(lastErr) || ctx.Err() != nil || attempt == p.MaxRetries {
			break
		}

		if err := sleep(ctx, p.BaseDelay*time.Duration(1<<attempt)); err != nil {
			return err
		}
	}
	return lastErr
}
