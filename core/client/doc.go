// Package client implements ParseClient, the HTTP client for the remote LPP
// parse service.
//
// A call to [ParseClient.Parse] posts {"source": ...} to the configured
// endpoint (http://localhost:1323/parse by default) and ends in exactly one of
// four outcomes:
//
//   - a decoded [*Response] for a 2xx status,
//   - a [*TransportError] when no response was received,
//   - an [*ApplicationError] carrying the server's JSON body for a non-2xx
//     status,
//   - a [*DecodeError] when a 2xx body is not the expected JSON.
//
// No retry, timeout or rate limit is applied unless configured. The
// middleware subpackage provides them as [MiddlewareConfig] values for
// [WithMiddleware]:
//
//	c := client.New(
//	    client.WithBaseURL("http://parser.internal:1323"),
//	    client.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(10*time.Second),
//	        middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: 2}),
//	    ),
//	)
//	res, err := c.Parse(ctx, "sea x = 5; x * 2")
//
// A ParseClient is immutable after construction and safe for concurrent use.
package client
