package client

import "context"

// ParseFunc performs one parse call. It is the unit threaded through the
// middleware chain; the innermost ParseFunc sends the HTTP request.
type ParseFunc func(ctx context.Context, request ParseRequest) (*Response, error)

// Middleware wraps the next ParseFunc in the chain.
type Middleware func(next ParseFunc) ParseFunc

// MiddlewareConfig is one named entry of the chain. Name only shows up in
// logs and tests. Entries with a nil Parse are skipped.
type MiddlewareConfig struct {
	Name  string
	Parse Middleware
}

// buildParseChain wraps base with middlewares so that middlewares[0] is the
// outermost wrapper, i.e. the first to see a request and the last to see its
// result.
func buildParseChain(base ParseFunc, middlewares []MiddlewareConfig) ParseFunc {
	chain := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i].Parse != nil {
			chain = middlewares[i].Parse(chain)
		}
	}
	return chain
}
