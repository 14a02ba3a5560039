package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leofalp/lpp/core/client"
)

// slowParse returns a ParseFunc that waits for sleep or for ctx, whichever
// comes first.
func slowParse(sleep time.Duration) client.ParseFunc {
	return func(ctx context.Context, _ client.ParseRequest) (*client.Response, error) {
		select {
		case <-time.After(sleep):
			return &client.Response{Evaluated: "ok"}, nil
		case <-ctx.Done():
			return nil, &client.TransportError{Op: http.MethodPost, Err: ctx.Err()}
		}
	}
}

// TestTimeoutMiddleware_CompletesBeforeTimeout verifies that a fast call is
// unaffected.
func TestTimeoutMiddleware_CompletesBeforeTimeout(t *testing.T) {
	chain := NewTimeoutMiddleware(time.Second).Parse(slowParse(0))

	resp, err := chain(context.Background(), client.ParseRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Evaluated != "ok" {
		t.Errorf("expected ok, got %q", resp.Evaluated)
	}
}

// TestTimeoutMiddleware_Expires verifies that a slow call fails with a
// transport error wrapping context.DeadlineExceeded.
func TestTimeoutMiddleware_Expires(t *testing.T) {
	chain := NewTimeoutMiddleware(20 * time.Millisecond).Parse(slowParse(time.Second))

	start := time.Now()
	_, err := chain(context.Background(), client.ParseRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if !client.IsTransport(err) {
		t.Errorf("expected transport kind, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("timeout took too long: %v", time.Since(start))
	}
}

// TestTimeoutMiddleware_ShorterParentDeadlineWins verifies normal context
// semantics.
func TestTimeoutMiddleware_ShorterParentDeadlineWins(t *testing.T) {
	var deadline time.Time
	next := func(ctx context.Context, _ client.ParseRequest) (*client.Response, error) {
		deadline, _ = ctx.Deadline()
		return &client.Response{}, nil
	}

	parent, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	parentDeadline, _ := parent.Deadline()

	if _, err := NewTimeoutMiddleware(time.Hour).Parse(next)(parent, client.ParseRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deadline.Equal(parentDeadline) {
		t.Errorf("expected parent deadline %v, got %v", parentDeadline, deadline)
	}
}

// TestTimeoutMiddleware_WithClient verifies the deadline reaches the HTTP
// request.
func TestTimeoutMiddleware_WithClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := client.New(
		client.WithBaseURL(server.URL),
		client.WithMiddleware(NewTimeoutMiddleware(30*time.Millisecond)),
	)

	_, err := c.Parse(context.Background(), "x")
	var transportErr *client.TransportError
	if !errors.As(err, &transportErr) || !transportErr.Timeout() {
		t.Fatalf("expected timed out transport error, got %v", err)
	}
}
