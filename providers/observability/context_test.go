package observability

import (
	"context"
	"sync"
	"testing"
)

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("expected nil span from empty context, got %v", span)
	}
}

func TestContextWithSpan_RoundTrip(t *testing.T) {
	span := &mockSpan{name: "lpp.parse"}
	ctx := ContextWithSpan(context.Background(), span)

	if got := SpanFromContext(ctx); got != span {
		t.Errorf("expected the stored span back, got %v", got)
	}
}

func TestContextWithSpan_Overwrite(t *testing.T) {
	first := &mockSpan{name: "first"}
	second := &mockSpan{name: "second"}

	ctx := ContextWithSpan(context.Background(), first)
	ctx = ContextWithSpan(ctx, second)

	if got := SpanFromContext(ctx); got != second {
		t.Errorf("expected innermost span, got %v", got)
	}
}

func TestSpanFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), spanContextKey, "not a span")
	if span := SpanFromContext(ctx); span != nil {
		t.Errorf("expected nil for wrong value type, got %v", span)
	}
}

func TestContextWithObserver_RoundTrip(t *testing.T) {
	observer := &mockProvider{label: "primary"}
	ctx := ContextWithObserver(context.Background(), observer)

	got, ok := ObserverFromContext(ctx).(*mockProvider)
	if !ok || got != observer {
		t.Fatalf("expected stored observer, got %v", ObserverFromContext(ctx))
	}
}

func TestObserverFromContext_MissingKey(t *testing.T) {
	if got := ObserverFromContext(context.Background()); got != nil {
		t.Errorf("expected nil observer, got %v", got)
	}
}

func TestContextWithSpan_Concurrent(t *testing.T) {
	base := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			span := &mockSpan{name: "concurrent"}
			ctx := ContextWithSpan(base, span)
			if SpanFromContext(ctx) != span {
				t.Error("span mismatch across goroutines")
			}
		}()
	}
	wg.Wait()

	if SpanFromContext(base) != nil {
		t.Error("base context must stay untouched")
	}
}

type mockSpan struct {
	name string
}

func (m *mockSpan) End()                                          {}
func (m *mockSpan) SetAttributes(attrs ...Attribute)              {}
func (m *mockSpan) SetStatus(code StatusCode, description string) {}
func (m *mockSpan) RecordError(err error)                         {}
func (m *mockSpan) AddEvent(name string, attrs ...Attribute)      {}

type mockProvider struct {
	label string
}

func (m *mockProvider) StartSpan(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, nil
}
func (m *mockProvider) Counter(_ string) Counter                          { return nil }
func (m *mockProvider) Histogram(_ string) Histogram                      { return nil }
func (m *mockProvider) Debug(_ context.Context, _ string, _ ...Attribute) {}
func (m *mockProvider) Info(_ context.Context, _ string, _ ...Attribute)  {}
func (m *mockProvider) Warn(_ context.Context, _ string, _ ...Attribute)  {}
func (m *mockProvider) Error(_ context.Context, _ string, _ ...Attribute) {}
