package middleware

import "errors"

// ErrRetryExhausted is returned by the retry middleware when every attempt
// failed with a retryable error. The last attempt's error is wrapped as well,
// so both errors.Is(err, ErrRetryExhausted) and client.IsTransport(err) (or
// IsApplication) hold.
var ErrRetryExhausted = errors.New("lpp: all retry attempts exhausted")
