package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/leofalp/lpp/internal/utils"
	"github.com/leofalp/lpp/providers/observability"
)

const (
	// DefaultBaseURL is where the parse service listens unless configured
	// otherwise.
	DefaultBaseURL = "http://localhost:1323"

	// DefaultEndpoint is the path of the parse operation.
	DefaultEndpoint = "/parse"

	// EnvServerURL overrides the base URL in NewFromEnv.
	EnvServerURL = "LPP_SERVER_URL"

	// EnvTimeout sets a per-attempt timeout in NewFromEnv, as a Go duration.
	EnvTimeout = "LPP_TIMEOUT"
)

// ParseClient sends source text to the remote parse service.
type ParseClient struct {
	baseURL     string
	endpoint    string
	httpClient  *http.Client
	timeout     time.Duration
	headers     []utils.HeaderOption
	observer    observability.Provider
	middlewares []MiddlewareConfig
	chain       ParseFunc
}

// Option configures a ParseClient.
type Option func(*ParseClient)

// WithBaseURL sets scheme, host and port, e.g. "http://localhost:1323". A
// trailing slash is dropped.
func WithBaseURL(baseURL string) Option {
	return func(c *ParseClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithEndpoint sets the request path, "/parse" by default.
func WithEndpoint(endpoint string) Option {
	return func(c *ParseClient) {
		if !strings.HasPrefix(endpoint, "/") {
			endpoint = "/" + endpoint
		}
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the http.Client, e.g. to tune the transport or to
// point at an httptest server.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *ParseClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every HTTP attempt. Unlike the timeout middleware it
// applies per attempt, so retries each get the full duration. Zero disables
// it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *ParseClient) {
		c.timeout = timeout
	}
}

// WithHeader adds a request header, e.g. for auth in front of the service.
// Accept and Content-Type can be overridden but the body is always JSON.
func WithHeader(key, value string) Option {
	return func(c *ParseClient) {
		c.headers = append(c.headers, utils.HeaderOption{Key: key, Value: value})
	}
}

// WithObserver enables tracing and metrics; see NewObservabilityMiddleware.
func WithObserver(observer observability.Provider) Option {
	return func(c *ParseClient) {
		c.observer = observer
	}
}

// WithMiddleware appends middlewares to the chain. The first one given is
// the outermost.
func WithMiddleware(middlewares ...MiddlewareConfig) Option {
	return func(c *ParseClient) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// New returns a ParseClient targeting http://localhost:1323/parse unless
// options say otherwise.
func New(opts ...Option) *ParseClient {
	c := &ParseClient{
		baseURL:    DefaultBaseURL,
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}

	middlewares := c.middlewares
	if c.observer != nil {
		middlewares = append([]MiddlewareConfig{NewObservabilityMiddleware(c.observer, c.URL())}, middlewares...)
	}
	c.chain = buildParseChain(c.send, middlewares)

	return c
}

// NewFromEnv is New with LPP_SERVER_URL and LPP_TIMEOUT applied before opts,
// so explicit options win. An unparsable LPP_TIMEOUT is an error.
func NewFromEnv(opts ...Option) (*ParseClient, error) {
	var envOpts []Option

	if baseURL := strings.TrimSpace(os.Getenv(EnvServerURL)); baseURL != "" {
		envOpts = append(envOpts, WithBaseURL(baseURL))
	}

	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvTimeout, raw, err)
		}
		envOpts = append(envOpts, WithTimeout(timeout))
	}

	return New(append(envOpts, opts...)...), nil
}

// URL returns the full endpoint URL requests are posted to.
func (c *ParseClient) URL() string {
	return c.baseURL + c.endpoint
}

// Parse submits source for parsing and evaluation and returns the server's
// response. See the package documentation for the error kinds.
func (c *ParseClient) Parse(ctx context.Context, source string) (*Response, error) {
	return c.chain(ctx, ParseRequest{Source: source})
}

// ParseFile reads path and parses its contents. An empty file returns
// ErrEmptySource without contacting the server.
func (c *ParseClient) ParseFile(ctx context.Context, path string) (*Response, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	if len(source) == 0 {
		return nil, ErrEmptySource
	}
	return c.Parse(ctx, string(source))
}

// send is the innermost ParseFunc: one HTTP round-trip and its
// classification.
func (c *ParseClient) send(ctx context.Context, request ParseRequest) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := c.URL()
	raw, err := utils.DoPostJSON(ctx, c.httpClient, url, request, c.headers...)
	if err != nil {
		return nil, &TransportError{Op: http.MethodPost, URL: url, Err: err}
	}

	if !raw.IsSuccess() {
		body, _ := utils.NormalizeJSON(raw.Body)
		return nil, &ApplicationError{StatusCode: raw.StatusCode, Body: body}
	}

	var response Response
	if err := json.Unmarshal(raw.Body, &response); err != nil {
		return nil, &DecodeError{
			StatusCode: raw.StatusCode,
			Preview:    utils.TruncateString(string(raw.Body), errorPreviewLen),
			Err:        err,
		}
	}

	return &response, nil
}
