package http

import (
	"context"
	"time"
)

// maxBackoffExponent caps the multiplier at 2^20 to avoid overflow.
const maxBackoffExponent = 20

// Backoff returns the delay before retry n, counting from 1: initial * 2^(n-1).
func Backoff(initial time.Duration, retry int) time.Duration {
	if retry < 1 || initial <= 0 {
		return 0
	}
	exp := retry - 1
	if exp > maxBackoffExponent {
		exp = maxBackoffExponent
	}
	return initial * time.Duration(1<<exp)
}

type retryPolicy struct {
	attempts int
	delay    time.Duration
	sleep    func(context.Context, time.Duration) error
	onRetry  func(ctx context.Context, retry int, delay time.Duration, err error)
}

// Retry runs op up to maxAttempts times with exponential backoff. Every error
// is retried; once attempts run out the last error is returned as-is. If ctx
// ends during a backoff sleep, ctx.Err() is returned.
func Retry[T any](ctx context.Context, maxAttempts int, initialDelay time.Duration, op func(context.Context) (T, error)) (T, error) {
	return runWithRetry(ctx, retryPolicy{attempts: maxAttempts, delay: initialDelay, sleep: sleepContext}, op)
}

// WithRetry runs op under c's configured RetryAttempts and RetryDelay.
func WithRetry[T any](ctx context.Context, c *Client, op func(context.Context) (T, error)) (T, error) {
	return runWithRetry(ctx, c.retryPolicy(), op)
}

// WithRetry runs op under the configured retry policy.
func (c *Client) WithRetry(ctx context.Context, op func(context.Context) error) error {
	_, err := runWithRetry(ctx, c.retryPolicy(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func (c *Client) retryPolicy() retryPolicy {
	return retryPolicy{
		attempts: c.config.RetryAttempts,
		delay:    c.config.RetryDelay,
		sleep:    c.sleep,
		onRetry: func(ctx context.Context, retry int, delay time.Duration, err error) {
			c.inst.recordRetry(ctx, retry, err)
			c.logger.Warn().
				Err(err).
				Int("retry", retry).
				Int("max_attempts", c.config.RetryAttempts).
				Dur("delay", delay).
				Msg("Retrying ZeroDB operation")
		},
	}
}

func runWithRetry[T any](ctx context.Context, p retryPolicy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if p.attempts < 1 {
		p.attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if attempt == p.attempts {
			break
		}

		delay := Backoff(p.delay, attempt)
		if p.onRetry != nil {
			p.onRetry(ctx, attempt, delay, err)
		}
		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
