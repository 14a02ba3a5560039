package middleware

import (
	"context"
	"time"

	"github.com/leofalp/lpp/core/client"
)

// NewTimeoutMiddleware enforces a deadline on each Parse call. Placed outside
// the retry middleware it bounds all attempts together; for a per-attempt
// bound use client.WithTimeout instead.
//
// A shorter deadline already on the caller's context still wins. When the
// deadline fires during the HTTP exchange the call fails with a
// *client.TransportError wrapping context.DeadlineExceeded.
func NewTimeoutMiddleware(timeout time.Duration) client.MiddlewareConfig {
	return client.MiddlewareConfig{
		Name: "timeout",
		Parse: func(next client.ParseFunc) client.ParseFunc {
			return func(ctx context.Context, request client.ParseRequest) (*client.Response, error) {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				return next(ctx, request)
			}
		},
	}
}
