package client

import (
	"context"
	"time"

	"github.com/leofalp/lpp/providers/observability"
)

// NewObservabilityMiddleware wraps every parse call in an lpp.parse span and
// records the request counter, the error counter (tagged with the error kind)
// and the duration histogram in milliseconds.
//
// The span and observer are stored in the context before next runs so the
// HTTP helper can attach its request and response events to the same span.
// [WithObserver] installs this middleware as the outermost entry, which makes
// it measure the final outcome after retries.
func NewObservabilityMiddleware(observer observability.Provider, endpoint string) MiddlewareConfig {
	return MiddlewareConfig{
		Name: "observability",
		Parse: func(next ParseFunc) ParseFunc {
			return func(ctx context.Context, request ParseRequest) (*Response, error) {
				ctx, span := observer.StartSpan(ctx, observability.SpanParse,
					observability.String(observability.AttrParseEndpoint, endpoint),
					observability.Int(observability.AttrParseSourceLength, len(request.Source)),
				)
				defer span.End()
				ctx = observability.ContextWithSpan(ctx, span)
				ctx = observability.ContextWithObserver(ctx, observer)

				observer.Counter(observability.MetricParseRequests).Add(ctx, 1)

				start := time.Now()
				response, err := next(ctx, request)
				elapsed := time.Since(start)

				observer.Histogram(observability.MetricParseDuration).Record(ctx,
					float64(elapsed.Microseconds())/1000.0)

				if err != nil {
					kind := ErrorKind(err)
					span.RecordError(err)
					span.SetAttributes(observability.String(observability.AttrErrorKind, kind))
					span.SetStatus(observability.StatusError, kind)

					observer.Counter(observability.MetricParseErrors).Add(ctx, 1,
						observability.String(observability.AttrErrorKind, kind))
					observer.Debug(ctx, "parse failed",
						observability.String(observability.AttrErrorKind, kind),
						observability.Error(err),
						observability.Duration("duration", elapsed),
					)
					return nil, err
				}

				span.SetAttributes(observability.Bool(observability.AttrParseHasErrors, response != nil && response.Erros != ""))
				span.SetStatus(observability.StatusOK, "")
				return response, nil
			}
		},
	}
}
