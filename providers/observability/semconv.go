package observability

// Attribute keys, span names, event names and metric names shared by every
// component that records observations.

// --- Parse call attributes ---

const (
	// AttrParseEndpoint is the full URL the source was posted to.
	AttrParseEndpoint = "lpp.parse.endpoint"

	// AttrParseSourceLength is the length in bytes of the submitted source.
	AttrParseSourceLength = "lpp.parse.source_length"

	// AttrParseHasErrors is true when the server filled the erros field.
	AttrParseHasErrors = "lpp.parse.has_errors"

	// AttrErrorKind classifies a failure: transport, application or decode.
	AttrErrorKind = "error.kind"

	// AttrError carries an error message.
	AttrError = "error"
)

// --- HTTP attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPURL              = "http.url"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPRequestBodySize  = "http.request.body_size"
	AttrHTTPResponseBodySize = "http.response.body_size"
	AttrHTTPDuration         = "http.request.duration"
)

// --- Status attributes ---

const (
	AttrStatus            = "status"
	AttrStatusDescription = "status.description"
)

// --- Span names ---

const (
	// SpanParse wraps one ParseClient.Parse call, middleware included.
	SpanParse = "lpp.parse"
)

// --- Event names ---

const (
	EventHTTPRequestPrepared = "http.request.prepared"
	EventHTTPRequestError    = "http.request.error"
	EventHTTPResponse        = "http.response.received"
)

// --- Metric names ---

const (
	// MetricParseRequests counts Parse calls.
	MetricParseRequests = "lpp.parse.requests"

	// MetricParseErrors counts failed Parse calls, tagged with AttrErrorKind.
	MetricParseErrors = "lpp.parse.errors"

	// MetricParseDuration records the wall time of Parse calls in milliseconds.
	MetricParseDuration = "lpp.parse.duration"
)
