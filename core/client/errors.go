package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/leofalp/lpp/internal/utils"
)

// ErrEmptySource is returned by ParseFile for an empty file. No request is
// sent.
var ErrEmptySource = errors.New("lpp: empty source")

// Error kinds as reported by ErrorKind and recorded on spans and metrics.
const (
	KindTransport   = "transport"
	KindApplication = "application"
	KindDecode      = "decode"
	KindOther       = "other"
)

// errorPreviewLen bounds how much of a body ends up in an error string.
const errorPreviewLen = 200

// TransportError means no HTTP response was received: the request could not
// be built or sent, the connection failed or was interrupted, or the context
// ended first.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("lpp: transport failure on %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline, either from the
// context or from the network layer.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ApplicationError is a delivered response with a non-2xx status. Body holds
// the server's JSON body as received; a body that was not JSON is carried
// verbatim as a JSON string.
type ApplicationError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("lpp: server responded with status %d: %s",
		e.StatusCode, utils.TruncateString(string(e.Body), errorPreviewLen))
}

// Decode unmarshals the error body into v. When Body is a string holding a
// malformed JSON object or array, a repaired copy of that text is decoded
// instead; Body itself is left untouched.
func (e *ApplicationError) Decode(v any) error {
	err := json.Unmarshal(e.Body, v)
	if err == nil {
		return nil
	}
	if repaired, ok := e.repaired(); ok {
		if repairErr := json.Unmarshal(repaired, v); repairErr == nil {
			return nil
		}
	}
	return err
}

// repaired returns the jsonrepair result for a string body that looks like
// a malformed object or array.
func (e *ApplicationError) repaired() (json.RawMessage, bool) {
	var text string
	if err := json.Unmarshal(e.Body, &text); err != nil {
		return nil, false
	}
	return utils.RepairJSON(text)
}

// Message extracts a human readable message: the "message" or "error" field
// of an object body, the value of a string body, or the raw body otherwise.
func (e *ApplicationError) Message() string {
	var object map[string]any
	if err := e.Decode(&object); err == nil {
		for _, key := range []string{"message", "error"} {
			if value, ok := object[key].(string); ok {
				return value
			}
		}
	}

	var text string
	if err := json.Unmarshal(e.Body, &text); err == nil {
		return text
	}
	return string(e.Body)
}

// Retryable reports whether the status signals a transient server condition
// (429 or 5xx).
func (e *ApplicationError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// DecodeError is a 2xx response whose body could not be decoded into
// Response.
type DecodeError struct {
	StatusCode int
	Preview    string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("lpp: cannot decode response (status %d): %v; body: %s", e.StatusCode, e.Err, e.Preview)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err contains a *TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsApplication reports whether err contains an *ApplicationError.
func IsApplication(err error) bool {
	var target *ApplicationError
	return errors.As(err, &target)
}

// IsDecode reports whether err contains a *DecodeError.
func IsDecode(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// ErrorKind classifies err as one of the Kind constants. A nil error yields
// the empty string.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsApplication(err):
		return KindApplication
	case IsDecode(err):
		return KindDecode
	case IsTransport(err):
		return KindTransport
	default:
		return KindOther
	}
}
