// Package middleware provides built-in middleware for the lpp parse client.
// Each middleware is constructed via a New* function that returns a
// [client.MiddlewareConfig] ready to be passed to [client.WithMiddleware].
//
// # Available Middleware
//
//   - [NewTimeoutMiddleware]: bounds the whole call, retries included, with
//     context.WithTimeout.
//
//   - [NewRetryMiddleware]: retries transport failures and 429/5xx responses
//     with exponential backoff and jitter. Decode failures and other 4xx
//     responses are returned immediately.
//
//   - [NewRateLimitMiddleware]: caps the request rate of one client with a
//     token bucket from golang.org/x/time/rate.
//
//   - [NewLoggingMiddleware]: emits slog entries before and after every call,
//     with three verbosity levels (Minimal, Standard, Verbose).
//
// # Usage
//
//	c := client.New(
//	    client.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(10*time.Second),
//	        middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: 3}),
//	        middleware.NewRateLimitMiddleware(5, 1),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// The first entry is the outermost wrapper. In the example above a request
// travels
//
//	Timeout -> Retry -> RateLimit -> Logging -> HTTP
//
// so every retry attempt waits for a rate-limit token and is logged on its
// own, while the timeout covers all attempts together.
package middleware
