package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leofalp/lpp/core/client"
)

// TestRateLimitMiddleware_Burst verifies that calls within the burst do not
// wait.
func TestRateLimitMiddleware_Burst(t *testing.T) {
	seq := &parseSequence{}
	chain := NewRateLimitMiddleware(1, 3).Parse(seq.next)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := chain(context.Background(), client.ParseRequest{}); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("burst calls should not wait, took %v", elapsed)
	}
	if seq.calls() != 3 {
		t.Errorf("expected 3 calls, got %d", seq.calls())
	}
}

// TestRateLimitMiddleware_Throttles verifies that calls beyond the burst wait
// for a token.
func TestRateLimitMiddleware_Throttles(t *testing.T) {
	seq := &parseSequence{}
	chain := NewRateLimitMiddleware(20, 1).Parse(seq.next)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := chain(context.Background(), client.ParseRequest{}); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	// Two waits of 50ms each at 20 rps.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected throttling, took only %v", elapsed)
	}
}

// TestRateLimitMiddleware_CanceledWait verifies that waiting for a token is
// cancellable and does not reach the next function.
func TestRateLimitMiddleware_CanceledWait(t *testing.T) {
	seq := &parseSequence{}
	chain := NewRateLimitMiddleware(0.001, 1).Parse(seq.next)

	if _, err := chain(context.Background(), client.ParseRequest{}); err != nil {
		t.Fatalf("first call should use the burst token: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain(ctx, client.ParseRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !client.IsTransport(err) {
		t.Errorf("expected transport kind, got %v", err)
	}
	if seq.calls() != 1 {
		t.Errorf("expected the canceled call to be dropped, got %d calls", seq.calls())
	}
}

// TestRateLimitMiddleware_MinimumBurst verifies a zero burst still lets calls
// through.
func TestRateLimitMiddleware_MinimumBurst(t *testing.T) {
	seq := &parseSequence{}
	chain := NewRateLimitMiddleware(100, 0).Parse(seq.next)

	if _, err := chain(context.Background(), client.ParseRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
