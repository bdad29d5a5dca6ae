// Package retrier wraps an operation with bounded retries and a terminal
// fallback, so one failing upstream degrades to an empty result instead of
// aborting the whole build.
package retrier

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Policy defines retry behavior.
type Policy struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
	Jitter          bool
	// AttemptTimeout bounds a single attempt; 0 means no per-attempt limit.
	AttemptTimeout time.Duration
}

// DefaultPolicy provides sensible defaults.
var DefaultPolicy = Policy{
	MaxAttempts:     3,
	InitialDelay:    256 * time.Millisecond,
	MaxDelay:        30 * time.Second,
	BackoffMultiple: 2.0,
	AttemptTimeout:  30 * time.Second,
}

// Do executes op until it succeeds or the attempt budget is exhausted.
// The attempt number passed to op starts at 1. Backoff is computed before
// each retry, never before the first attempt. On exhaustion, or when ctx
// is cancelled between attempts, the final error is logged and the
// fallback value is returned; Do never propagates op's error.
func Do[T any](
	ctx context.Context,
	p Policy,
	log *slog.Logger,
	op func(ctx context.Context, attempt int) (T, error),
	fallback func() T,
) T {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
		}

		result, err := op(attemptCtx, attempt)
		cancel()
		if err == nil {
			return result
		}

		lastErr = err
		if attempt == p.MaxAttempts {
			break
		}

		delay := backoff(attempt-1, p)
		log.Warn("attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			log.Error("aborted between attempts", "attempt", attempt, "error", ctx.Err())
			return fallback()
		case <-time.After(delay):
		}
	}

	log.Error("retry budget exhausted, falling back to empty result",
		"attempts", p.MaxAttempts,
		"error", lastErr)
	return fallback()
}

func backoff(attempt int, p Policy) time.Duration {
	delay := float64(p.InitialDelay) * math.Pow(p.BackoffMultiple, float64(attempt))
	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	if p.Jitter {
		delay *= 0.5 + rand.Float64()/2
	}
	return time.Duration(delay)
}
