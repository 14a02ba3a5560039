package slogobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leofalp/lpp/providers/observability"
)

// Observer implements observability.Provider using log/slog.
type Observer struct {
	logger  *slog.Logger
	metrics *metricsStore
}

// New creates a slog-based observer.
//
//	observer := slogobs.New(
//	    slogobs.WithFormat(slogobs.FormatJSON),
//	    slogobs.WithLevel(slog.LevelDebug),
//	)
func New(opts ...Option) *Observer {
	cfg := applyOptions(opts...)

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(NewHandler(&HandlerOptions{
			Format: cfg.format,
			Level:  cfg.level,
			Output: cfg.output,
			Colors: cfg.colors,
		}))
	}

	return &Observer{
		logger:  logger,
		metrics: newMetricsStore(),
	}
}

var _ observability.Provider = (*Observer)(nil)

// Logger exposes the underlying slog.Logger so middleware can share it.
func (o *Observer) Logger() *slog.Logger {
	return o.logger
}

// --- TRACING ---

// StartSpan logs the span start at debug level and returns ctx with the span
// attached, so lower layers can find it through observability.SpanFromContext.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &slogSpan{
		name:      name,
		startTime: time.Now(),
		logger:    o.logger,
		attrs:     append([]observability.Attribute(nil), attrs...),
	}

	logAttrs := []slog.Attr{
		slog.String("span", name),
		slog.String("event", "span.start"),
	}
	logAttrs = appendAttrs(logAttrs, attrs)
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Span started", logAttrs...)

	return observability.ContextWithSpan(ctx, span), span
}

type slogSpan struct {
	name      string
	startTime time.Time
	logger    *slog.Logger
	mu        sync.Mutex
	attrs     []observability.Attribute
	status    observability.StatusCode
	ended     bool
}

// End logs the span duration with every accumulated attribute. Failed spans
// are logged at warn level. Calling End twice is a no-op.
func (s *slogSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	s.ended = true

	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", "span.end"),
		slog.Duration("duration", time.Since(s.startTime)),
	}
	logAttrs = appendAttrs(logAttrs, s.attrs)

	level := slog.LevelDebug
	if s.status == observability.StatusError {
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(context.Background(), level, "Span ended", logAttrs...)
}

func (s *slogSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *slogSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = code
	s.attrs = append(s.attrs, observability.String(observability.AttrStatus, code.String()))
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

func (s *slogSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attrs = append(s.attrs, observability.Error(err))
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span error",
		slog.String("span", s.name),
		slog.String("event", "error"),
		slog.String(observability.AttrError, err.Error()),
	)
}

func (s *slogSpan) AddEvent(name string, attrs ...observability.Attribute) {
	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", name),
	}
	logAttrs = appendAttrs(logAttrs, attrs)
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span event", logAttrs...)
}

// --- METRICS ---

func (o *Observer) Counter(name string) observability.Counter {
	return o.metrics.counter(name, o.logger)
}

func (o *Observer) Histogram(name string) observability.Histogram {
	return o.metrics.histogram(name, o.logger)
}

// CounterValue returns the running total of the named counter, or zero when
// nothing was recorded under that name.
func (o *Observer) CounterValue(name string) int64 {
	o.metrics.mu.RLock()
	counter, ok := o.metrics.counters[name]
	o.metrics.mu.RUnlock()
	if !ok {
		return 0
	}

	counter.mu.Lock()
	defer counter.mu.Unlock()
	return counter.value
}

type metricsStore struct {
	mu         sync.RWMutex
	counters   map[string]*slogCounter
	histograms map[string]*slogHistogram
}

func newMetricsStore() *metricsStore {
	return &metricsStore{
		counters:   make(map[string]*slogCounter),
		histograms: make(map[string]*slogHistogram),
	}
}

func (m *metricsStore) counter(name string, logger *slog.Logger) *slogCounter {
	m.mu.RLock()
	counter, ok := m.counters[name]
	m.mu.RUnlock()
	if ok {
		return counter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if counter, ok := m.counters[name]; ok {
		return counter
	}
	counter = &slogCounter{name: name, logger: logger}
	m.counters[name] = counter
	return counter
}

func (m *metricsStore) histogram(name string, logger *slog.Logger) *slogHistogram {
	m.mu.RLock()
	histogram, ok := m.histograms[name]
	m.mu.RUnlock()
	if ok {
		return histogram
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, ok := m.histograms[name]; ok {
		return histogram
	}
	histogram = &slogHistogram{name: name, logger: logger}
	m.histograms[name] = histogram
	return histogram
}

type slogCounter struct {
	name   string
	logger *slog.Logger
	mu     sync.Mutex
	value  int64
}

func (c *slogCounter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.value += value
	current := c.value
	c.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", c.name),
		slog.String("type", "counter"),
		slog.Int64("value", current),
		slog.Int64("delta", value),
	}
	logAttrs = appendAttrs(logAttrs, attrs)
	c.logger.LogAttrs(ctx, slog.LevelDebug, "Counter", logAttrs...)
}

type slogHistogram struct {
	name   string
	logger *slog.Logger
}

func (h *slogHistogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	logAttrs := []slog.Attr{
		slog.String("metric", h.name),
		slog.String("type", "histogram"),
		slog.Float64("value", value),
	}
	logAttrs = appendAttrs(logAttrs, attrs)
	h.logger.LogAttrs(ctx, slog.LevelDebug, "Histogram", logAttrs...)
}

// --- LOGGING ---

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelDebug, msg, attrs...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelInfo, msg, attrs...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelWarn, msg, attrs...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelError, msg, attrs...)
}

func (o *Observer) log(ctx context.Context, level slog.Level, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, level, msg, appendAttrs(make([]slog.Attr, 0, len(attrs)), attrs)...)
}

func appendAttrs(dst []slog.Attr, attrs []observability.Attribute) []slog.Attr {
	for _, attr := range attrs {
		dst = append(dst, slog.Any(attr.Key, attr.Value))
	}
	return dst
}
