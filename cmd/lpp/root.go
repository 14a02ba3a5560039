package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/lpp/core/client"
	"github.com/leofalp/lpp/core/client/middleware"
	"github.com/leofalp/lpp/core/session"
	"github.com/leofalp/lpp/providers/observability/slogobs"
)

// exitCodeError ends the process with code. A nil err means the command
// already reported the problem and nothing else is printed.
type exitCodeError struct {
	code int
	err  error
}

func (e exitCodeError) Error() string {
	if e.err == nil {
		return "command failed"
	}
	return e.err.Error()
}

func (e exitCodeError) Unwrap() error {
	return e.err
}

func (e exitCodeError) ExitCode() int {
	if e.code <= 0 {
		return 1
	}
	return e.code
}

// errServerReported is returned when the service answered with erros.
var errServerReported = exitCodeError{code: 1}

type rootOptions struct {
	url       string
	timeout   time.Duration
	retries   int
	rate      float64
	burst     int
	logLevel  string
	logFormat string
	logDetail string
	verbose   bool
	headers   []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "lpp",
		Short:         "Run LPP programs on a remote parse service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.url, "url", "", "parse service base URL (default $LPP_SERVER_URL or "+client.DefaultBaseURL+")")
	flags.DurationVar(&opts.timeout, "timeout", 0, "overall deadline per parse call, retries included (0 = none)")
	flags.IntVar(&opts.retries, "retries", 0, "retry transport failures and 429/5xx responses up to N times")
	flags.Float64Var(&opts.rate, "rate", 0, "maximum parse calls per second (0 = unlimited)")
	flags.IntVar(&opts.burst, "burst", 1, "burst size for --rate")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error (default $LPP_LOG_LEVEL or info)")
	flags.StringVar(&opts.logFormat, "log-format", "", "compact, pretty or json (default $LPP_LOG_FORMAT or compact)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every request with its source and result")
	flags.StringVar(&opts.logDetail, "log-detail", "", "log every request at minimal, standard or verbose detail (--verbose implies verbose)")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, `extra request header as "Key: Value" (repeatable)`)

	cmd.AddCommand(
		newFileCmd(opts),
		newReplCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

// newObserver builds the slog-backed observer writing to w.
func (o *rootOptions) newObserver(w io.Writer) *slogobs.Observer {
	level := slogobs.GetLogLevelFromEnv()
	if o.logLevel != "" {
		level = slogobs.ParseLogLevel(o.logLevel)
	}
	format := slogobs.GetFormatFromEnv()
	if o.logFormat != "" {
		format = slogobs.ParseFormat(o.logFormat)
	}

	return slogobs.New(
		slogobs.WithLevel(level),
		slogobs.WithFormat(format),
		slogobs.WithOutput(w),
	)
}

// newClient builds a ParseClient from the environment and the persistent
// flags. Logs go to the command's error stream.
func (o *rootOptions) newClient(cmd *cobra.Command) (*client.ParseClient, *slog.Logger, error) {
	observer := o.newObserver(cmd.ErrOrStderr())
	logger := observer.Logger()

	clientOpts := []client.Option{client.WithObserver(observer)}
	if o.url != "" {
		clientOpts = append(clientOpts, client.WithBaseURL(o.url))
	}
	for _, header := range o.headers {
		key, value, ok := strings.Cut(header, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, nil, fmt.Errorf("invalid header %q, expected \"Key: Value\"", header)
		}
		clientOpts = append(clientOpts, client.WithHeader(key, strings.TrimSpace(value)))
	}

	var middlewares []client.MiddlewareConfig
	if o.timeout > 0 {
		middlewares = append(middlewares, middleware.NewTimeoutMiddleware(o.timeout))
	}
	if o.retries > 0 {
		middlewares = append(middlewares, middleware.NewRetryMiddleware(middleware.RetryConfig{
			MaxRetries: o.retries,
			OnRetry: func(retry int, err error, backoff time.Duration) {
				logger.Warn("retrying parse",
					slog.Int("retry", retry),
					slog.Duration("backoff", backoff),
					slog.String("error", err.Error()),
				)
			},
		}))
	}
	if o.rate > 0 {
		middlewares = append(middlewares, middleware.NewRateLimitMiddleware(o.rate, o.burst))
	}
	switch {
	case o.verbose:
		middlewares = append(middlewares, middleware.NewLoggingMiddleware(logger, middleware.LogLevelVerbose))
	case o.logDetail != "":
		middlewares = append(middlewares, middleware.NewLoggingMiddleware(logger, middleware.ParseLogLevel(o.logDetail)))
	}
	clientOpts = append(clientOpts, client.WithMiddleware(middlewares...))

	c, err := client.NewFromEnv(clientOpts...)
	if err != nil {
		return nil, nil, err
	}
	return c, logger, nil
}

// printResponse writes the evaluated value to out, or the server's errors to
// errOut. It returns errServerReported when the response carries errors.
func printResponse(out, errOut io.Writer, response *client.Response, jsonOutput bool) error {
	if jsonOutput {
		if err := emitJSON(out, response); err != nil {
			return err
		}
	} else {
		result := session.Result{Evaluated: response.Evaluated, Erros: response.Erros}
		if response.Erros != "" {
			fmt.Fprintln(errOut, response.Erros)
		} else if text := result.Output(); text != "" {
			fmt.Fprintln(out, text)
		}
	}

	if response.Erros != "" {
		return errServerReported
	}
	return nil
}

// describeError renders a parse failure for humans.
func describeError(err error) string {
	var appErr *client.ApplicationError
	var transportErr *client.TransportError
	switch {
	case errors.As(err, &appErr):
		return fmt.Sprintf("server error (status %d): %s", appErr.StatusCode, appErr.Message())
	case errors.As(err, &transportErr):
		if transportErr.Timeout() {
			return fmt.Sprintf("parse service timed out: %v", transportErr.Err)
		}
		return fmt.Sprintf("cannot reach parse service: %v", transportErr.Err)
	case client.IsDecode(err):
		return fmt.Sprintf("unexpected response from parse service: %v", err)
	default:
		return err.Error()
	}
}
