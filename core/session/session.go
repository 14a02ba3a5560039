package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leofalp/lpp/core/client"
)

const (
	// printKeyword marks a line that writes output as a side effect.
	printKeyword = "escribir"

	// nullValue is how the service renders an expression without value.
	nullValue = "nulo"

	// runtimeErrorPrefix starts the evaluated text of a runtime error.
	runtimeErrorPrefix = "Error: "
)

// Parser submits source to the parse service. *client.ParseClient
// implements it.
type Parser interface {
	Parse(ctx context.Context, source string) (*client.Response, error)
}

// Result is the outcome of evaluating one line.
type Result struct {
	// Evaluated is the service's rendering of the last value.
	Evaluated string

	// Erros holds the parse errors reported by the service.
	Erros string
}

// Failed reports whether the line was rejected, either with parse errors or
// with a runtime error value.
func (r Result) Failed() bool {
	return r.Erros != "" || strings.HasPrefix(r.Evaluated, runtimeErrorPrefix)
}

// Output is the text to show for the line: the errors when there are any,
// otherwise the evaluated value. A null value yields the empty string.
func (r Result) Output() string {
	if r.Erros != "" {
		return r.Erros
	}
	if r.Evaluated == nullValue {
		return ""
	}
	return r.Evaluated
}

// Session accumulates the lines of an interactive session. It is not safe
// for concurrent use.
type Session struct {
	parser  Parser
	logger  *slog.Logger
	history []string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for debug output. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New returns an empty session that evaluates through parser.
func New(parser Parser, opts ...Option) *Session {
	s := &Session{
		parser: parser,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Eval appends line to the history and sends the whole history to the
// service.
//
// The line is removed again when the call fails, when the service reports
// parse errors or a runtime error, and after a successful print statement.
// A blank line is ignored and yields a zero Result.
func (s *Session) Eval(ctx context.Context, line string) (Result, error) {
	if strings.TrimSpace(line) == "" {
		return Result{}, nil
	}

	s.history = append(s.history, line)
	source := strings.Join(s.history, " ")

	response, err := s.parser.Parse(ctx, source)
	if err != nil {
		s.dropLast()
		return Result{}, err
	}

	result := Result{Evaluated: response.Evaluated, Erros: response.Erros}
	if result.Failed() || strings.Contains(line, printKeyword) {
		s.dropLast()
	}

	s.logger.DebugContext(ctx, "session line evaluated",
		slog.Int("history_length", len(s.history)),
		slog.Bool("failed", result.Failed()),
	)

	return result, nil
}

// History returns a copy of the lines currently kept.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// Reset forgets every line.
func (s *Session) Reset() {
	s.history = nil
}

func (s *Session) dropLast() {
	if len(s.history) > 0 {
		s.history = s.history[:len(s.history)-1]
	}
}

// IsExit reports whether line asks to leave the session.
func IsExit(line string) bool {
	line = strings.TrimSpace(line)
	return line == "salir" || line == "salir()"
}

// IsClear reports whether line asks to clear the screen.
func IsClear(line string) bool {
	return strings.TrimSpace(line) == "limpiar()"
}
