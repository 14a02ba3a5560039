package observability

import (
	"context"
	"time"
)

// Provider is the main interface for observability (tracing, metrics, logging)
type Provider interface {
	Tracer
	Metrics
	Logger
}

// --- TRACING ---

// Tracer starts spans.
type Tracer interface {
	StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Span represents a single unit of work, typically one parse call.
type Span interface {
	End()
	SetAttributes(attrs ...Attribute)
	SetStatus(code StatusCode, description string)
	RecordError(err error)
	AddEvent(name string, attrs ...Attribute)
}

// StatusCode represents the status of a span
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// String returns the lowercase name used in log output.
func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "unset"
	}
}

// --- METRICS ---

// Metrics hands out named instruments. Asking twice for the same name returns
// the same instrument.
type Metrics interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// Counter is a monotonically increasing metric
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attribute)
}

// Histogram records distribution of values
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// --- LOGGING ---

// Logger provides structured logging capabilities
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// --- ATTRIBUTES ---

// Attribute represents a key-value pair for metadata
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Float64 creates a float64 attribute
func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value}
}

// Error creates an error attribute. A nil error yields an empty value.
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: AttrError, Value: ""}
	}
	return Attribute{Key: AttrError, Value: err.Error()}
}
