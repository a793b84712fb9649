package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// WithRetry runs fn up to MaxRetryAttempts times with exponential backoff
// (RetryBaseDelay, doubling on each failure). Only idempotent operations may
// be wrapped: mutating on-chain submissions are never retried because the
// previous attempt may already have been mined.
func WithRetry[T any](ctx context.Context, label string, fn func() (T, error)) (T, error) {
	attempt := 0
	return retryWithBase(ctx, RetryBaseDelay, MaxRetryAttempts, fn, func(err error, wait time.Duration) {
		attempt++
		fmt.Fprintf(os.Stderr, "  Retry %d/%d for %s (waiting %s)...\n", attempt, MaxRetryAttempts, label, wait)
	})
}

func retryWithBase[T any](ctx context.Context, base time.Duration, maxAttempts int, fn func() (T, error), notify backoff.Notify) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.RandomizationFactor = 0
	b.Multiplier = 2
	// Keep the schedule purely exponential: the cap must sit above the last
	// delay and the overall deadline is the attempt count, not elapsed time.
	b.MaxInterval = base << uint(maxAttempts)
	b.MaxElapsedTime = 0
	wrapped := backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxAttempts-1)), ctx)
	return backoff.RetryNotifyWithData(fn, wrapped, notify)
}
