package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"golang.org/x/term"
)

// Handler is a slog.Handler that writes compact, pretty or JSON lines.
type Handler struct {
	format Format
	level  slog.Leveler
	output io.Writer
	colors bool
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Format defaults to FormatCompact.
	Format Format
	// Level is the minimum level written. A *slog.LevelVar may be passed to
	// change it at runtime.
	Level slog.Leveler
	// Output defaults to os.Stderr.
	Output io.Writer
	// Colors forces ANSI colors on. They are switched on automatically when
	// Output is a terminal and the format is not JSON.
	Colors bool
}

// NewHandler creates a Handler. A nil opts yields compact output on stderr at
// info level.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	format := opts.Format
	if format == "" {
		format = FormatCompact
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	colors := opts.Colors
	if !colors && format != FormatJSON {
		if f, ok := output.(*os.File); ok {
			colors = isTerminal(f)
		}
	}

	return &Handler{
		format: format,
		level:  level,
		output: output,
		colors: colors,
		mu:     &sync.Mutex{},
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf []byte
	var err error

	switch h.format {
	case FormatPretty:
		buf = h.formatPretty(r)
	case FormatJSON:
		buf, err = h.formatJSON(r)
	default:
		buf = h.formatCompact(r)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(buf)
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.prefixed(attr.Key), Value: attr.Value})
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// formatCompact renders
//
//	2006-01-02 15:04:05  INFO message -> {"key":"value"}
func (h *Handler) formatCompact(r slog.Record) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')
	buf = h.appendLevel(buf, r.Level, fmt.Sprintf("%5s", levelString(r.Level)))
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	if attrs := h.collectAttrs(r); len(attrs) > 0 {
		buf = append(buf, " -> "...)
		encoded, err := json.Marshal(attrs)
		if err != nil {
			buf = append(buf, "[json-error]"...)
		} else {
			buf = append(buf, encoded...)
		}
	}
	return append(buf, '\n')
}

// formatPretty renders one header line followed by one indented line per
// attribute, sorted by key.
func (h *Handler) formatPretty(r slog.Record) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, " | "...)
	buf = h.appendLevel(buf, r.Level, fmt.Sprintf("%-5s", levelString(r.Level)))
	buf = append(buf, " | "...)
	buf = append(buf, r.Message...)
	buf = append(buf, '\n')

	attrs := h.collectAttrs(r)
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		buf = append(buf, "    "...)
		buf = append(buf, key...)
		buf = append(buf, " = "...)
		buf = append(buf, fmt.Sprintf("%v", attrs[key])...)
		buf = append(buf, '\n')
	}
	return buf
}

func (h *Handler) formatJSON(r slog.Record) ([]byte, error) {
	data := h.collectAttrs(r)
	data["time"] = r.Time.Format("2006-01-02T15:04:05.000Z07:00")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}

func (h *Handler) appendLevel(buf []byte, level slog.Level, text string) []byte {
	if !h.colors {
		return append(buf, text...)
	}
	buf = append(buf, colorForLevel(level)...)
	buf = append(buf, text...)
	return append(buf, colorReset...)
}

func (h *Handler) collectAttrs(r slog.Record) map[string]any {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrs[attr.Key] = attrValue(attr.Value)
	}
	r.Attrs(func(attr slog.Attr) bool {
		attrs[h.prefixed(attr.Key)] = attrValue(attr.Value)
		return true
	})
	return attrs
}

func (h *Handler) prefixed(key string) string {
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return key
}

// attrValue resolves LogValuers and turns durations and errors into strings
// so JSON output stays readable.
func attrValue(value slog.Value) any {
	value = value.Resolve()
	switch value.Kind() {
	case slog.KindDuration:
		return value.Duration().String()
	case slog.KindAny:
		if err, ok := value.Any().(error); ok {
			return err.Error()
		}
	}
	return value.Any()
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func colorForLevel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorGray
	case level < slog.LevelInfo:
		return colorBlue
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
