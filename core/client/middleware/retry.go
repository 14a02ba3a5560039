package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/leofalp/lpp/core/client"
)

// RetryConfig holds the tuning parameters for the retry middleware. Zero values
// are replaced with the defaults documented below when NewRetryMiddleware is called.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the first failure.
	// A value of 3 means the server is called at most 4 times (1 original + 3 retries).
	// A negative value disables retries; the server is still called once.
	// Default: 3.
	MaxRetries int

	// InitialBackoff is the wait duration before the first retry attempt.
	// Default: 200ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the computed backoff so it never exceeds this value.
	// Default: 5s.
	MaxBackoff time.Duration

	// BackoffFactor is the exponential growth multiplier applied to InitialBackoff
	// on successive retries (backoff = min(InitialBackoff * BackoffFactor^attempt, MaxBackoff)).
	// Default: 2.0.
	BackoffFactor float64

	// JitterFraction adds random noise to the computed backoff in the range
	// [0, JitterFraction * backoff].
	// Default: 0.1 (10% jitter).
	JitterFraction float64

	// RetryableFunc returns true when an error should trigger a retry.
	// Default: DefaultRetryable.
	RetryableFunc func(error) bool

	// OnRetry, when set, is called before sleeping ahead of each retry with the
	// 1-based retry number, the error that caused it and the chosen backoff.
	OnRetry func(retry int, err error, backoff time.Duration)
}

// DefaultRetryable reports whether err is worth another attempt: transport
// failures, and application errors with status 429 or 5xx. Decode failures
// and other 4xx statuses are final since the same request would fail the
// same way.
func DefaultRetryable(err error) bool {
	if err == nil {
		return false
	}

	var appErr *client.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Retryable()
	}

	return client.IsTransport(err)
}

// applyRetryDefaults fills in zero-valued fields in config with sensible defaults.
func applyRetryDefaults(config *RetryConfig) {
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}

	if config.InitialBackoff == 0 {
		config.InitialBackoff = 200 * time.Millisecond
	}

	if config.MaxBackoff == 0 {
		config.MaxBackoff = 5 * time.Second
	}

	if config.BackoffFactor == 0 {
		config.BackoffFactor = 2.0
	}

	if config.JitterFraction == 0 {
		config.JitterFraction = 0.1
	}

	if config.RetryableFunc == nil {
		config.RetryableFunc = DefaultRetryable
	}
}

// computeBackoff returns the backoff duration for the given attempt (0-indexed).
// backoff = min(InitialBackoff * BackoffFactor^attempt, MaxBackoff) + jitter
func computeBackoff(config RetryConfig, attempt int) time.Duration {
	base := float64(config.InitialBackoff) * math.Pow(config.BackoffFactor, float64(attempt))
	if base > float64(config.MaxBackoff) {
		base = float64(config.MaxBackoff)
	}

	jitter := base * config.JitterFraction * rand.Float64() //nolint:gosec // non-cryptographic jitter
	return time.Duration(base + jitter)
}

// NewRetryMiddleware retries failed parse calls according to config.
// Zero-valued fields are replaced with defaults (see RetryConfig).
//
// Once the caller's context is done no further attempt is made and the
// failure is returned as is. On exhaustion the returned error wraps both
// [ErrRetryExhausted] and the last error.
func NewRetryMiddleware(config RetryConfig) client.MiddlewareConfig {
	applyRetryDefaults(&config)

	return client.MiddlewareConfig{
		Name: "retry",
		Parse: func(next client.ParseFunc) client.ParseFunc {
			return func(ctx context.Context, request client.ParseRequest) (*client.Response, error) {
				var lastErr error

				for attempt := 0; attempt <= config.MaxRetries; attempt++ {
					if attempt > 0 {
						backoff := computeBackoff(config, attempt-1)
						if config.OnRetry != nil {
							config.OnRetry(attempt, lastErr, backoff)
						}

						timer := time.NewTimer(backoff)
						select {
						case <-ctx.Done():
							timer.Stop()
							return nil, lastErr
						case <-timer.C:
						}
					}

					response, err := next(ctx, request)
					if err == nil {
						return response, nil
					}

					lastErr = err

					if ctx.Err() != nil || !config.RetryableFunc(err) {
						return nil, err
					}
				}

				return nil, fmt.Errorf("%w after %d retries: %w", ErrRetryExhausted, config.MaxRetries, lastErr)
			}
		},
	}
}
