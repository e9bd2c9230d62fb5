// errors.go
// ---------
// Exactly two error kinds escape a call: *TransportError when no usable
// response was obtained, and *APIError when the exchange answered with a
// well-formed error payload. Nothing in this package retries, logs, or
// suppresses either kind.
package binancebridge

import (
	"errors"
	"fmt"
)

// ErrCallConsumed is returned when a Call is executed a second time. A Call
// is a one-shot value; build a new one per invocation.
var ErrCallConsumed = errors.New("binancebridge: call already executed")

// APIError is a structured error decoded from a non-2xx response payload.
// The exchange reports errors as {"code": <int>, "msg": <string>}.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binancebridge: API error (status %d, code %d): %s",
		e.StatusCode, e.Code, e.Message)
}

// TransportError wraps a low-level failure: no response was received, the
// response body could not be read, or an error payload could not itself be
// decoded. Op names the stage that failed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("binancebridge: transport failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err is (or wraps) an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsTransportError reports whether err is (or wraps) a *TransportError.
func IsTransportError(err error) bool {
	var trErr *TransportError
	return errors.As(err, &trErr)
}
