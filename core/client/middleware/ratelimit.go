package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/leofalp/lpp/core/client"
)

// NewRateLimitMiddleware limits parse calls to rps per second with bursts of
// up to burst calls. The limiter is shared by every call going through the
// returned middleware, so install one instance per client. A burst below 1 is
// treated as 1.
//
// Waiting honours ctx: when it ends first the call fails with a
// *client.TransportError wrapping the context error, the same kind the HTTP
// layer reports for a cancelled request.
func NewRateLimitMiddleware(rps float64, burst int) client.MiddlewareConfig {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return client.MiddlewareConfig{
		Name: "ratelimit",
		Parse: func(next client.ParseFunc) client.ParseFunc {
			return func(ctx context.Context, request client.ParseRequest) (*client.Response, error) {
				if err := limiter.Wait(ctx); err != nil {
					return nil, &client.TransportError{Op: "WAIT", Err: fmt.Errorf("rate limiter: %w", err)}
				}

				return next(ctx, request)
			}
		},
	}
}
