// Package observability defines the interfaces used by the lpp client for
// tracing, metrics and structured logging, together with the attribute and
// span-name conventions every component records under.
//
// A [Provider] bundles [Tracer], [Metrics] and [Logger]. The parse client
// starts one span per call and stores it in the request context with
// [ContextWithSpan]; lower layers such as the HTTP helper pick it up again
// with [SpanFromContext] and attach their own events to it.
//
// The concrete slog-backed implementation lives in the slogobs subpackage.
package observability
