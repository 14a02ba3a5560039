package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/lpp/providers/observability"
)

// HeaderOption is one request header. Later options override earlier ones
// and the JSON defaults.
type HeaderOption struct {
	Key   string
	Value string
}

// RawResponse is a fully read HTTP response.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports whether the status is in the 2xx range.
func (r *RawResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DoPostJSON POSTs body as JSON to url with Accept and Content-Type set to
// application/json and returns the status and the full body without
// interpreting either. Every returned error means no usable response was
// received: the request could not be built or sent, or the body could not be
// read. A span found in ctx receives request and response events.
func DoPostJSON(ctx context.Context, client *http.Client, url string, body any, headers ...HeaderOption) (*RawResponse, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPRequestPrepared,
			observability.String(observability.AttrHTTPMethod, http.MethodPost),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(jsonBody)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventHTTPRequestError,
				observability.Error(err),
				observability.Duration(observability.AttrHTTPDuration, time.Since(requestStart)),
			)
		}
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(res.Body)
	requestDuration := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("error reading response body (status %d): %w", res.StatusCode, err)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPResponse,
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPDuration, requestDuration),
		)
	}

	return &RawResponse{
		StatusCode: res.StatusCode,
		Body:       respBody,
	}, nil
}

// CloseWithLog closes c and logs a failure at warn level instead of
// returning it.
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
