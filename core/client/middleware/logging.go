package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/leofalp/lpp/core/client"
	"github.com/leofalp/lpp/internal/utils"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only the source length, duration and outcome.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds the error kind and status code of failures and
	// whether the server reported errors in erros.
	LogLevelStandard

	// LogLevelVerbose adds the submitted source and the evaluated output,
	// each truncated to 500 characters.
	//
	// WARNING: source text ends up in the logs. Meant for local debugging.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// ParseLogLevel maps "minimal", "standard" and "verbose" to a LogLevel.
// Anything else yields LogLevelStandard.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "minimal":
		return LogLevelMinimal
	case "verbose":
		return LogLevelVerbose
	default:
		return LogLevelStandard
	}
}

// NewLoggingMiddleware emits an entry before every parse call and one after
// it, at info level on success and error level on failure.
//
// The logger parameter must not be nil. Use slog.Default() if you have not
// configured a custom logger.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) client.MiddlewareConfig {
	return client.MiddlewareConfig{
		Name: "logging",
		Parse: func(next client.ParseFunc) client.ParseFunc {
			return func(ctx context.Context, request client.ParseRequest) (*client.Response, error) {
				logger.InfoContext(ctx, "parse", buildRequestAttrs(request, level)...)

				start := time.Now()
				response, err := next(ctx, request)
				elapsed := time.Since(start)

				if err != nil {
					logger.ErrorContext(ctx, "parse failed", buildErrorAttrs(err, elapsed, level)...)
					return nil, err
				}

				logger.InfoContext(ctx, "parse completed", buildResponseAttrs(response, elapsed, level)...)
				return response, nil
			}
		},
	}
}

func buildRequestAttrs(request client.ParseRequest, level LogLevel) []any {
	attrs := []any{
		slog.Int("source_length", len(request.Source)),
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("source", utils.TruncateString(request.Source, truncateLen)))
	}

	return attrs
}

func buildErrorAttrs(err error, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.Duration("duration", elapsed),
		slog.String("error", err.Error()),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.String("error.kind", client.ErrorKind(err)))

		if appErr, ok := asApplicationError(err); ok {
			attrs = append(attrs, slog.Int("status", appErr.StatusCode))
		}
	}

	return attrs
}

func buildResponseAttrs(response *client.Response, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.Duration("duration", elapsed),
	}
	if response == nil {
		return attrs
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.Bool("has_errors", response.Erros != ""))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("evaluated", utils.TruncateString(response.Evaluated, truncateLen)))
		if response.Erros != "" {
			attrs = append(attrs, slog.String("erros", utils.TruncateString(response.Erros, truncateLen)))
		}
	}

	return attrs
}

func asApplicationError(err error) (*client.ApplicationError, bool) {
	var appErr *client.ApplicationError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
