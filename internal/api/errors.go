package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorBody is the JSON error envelope the backend sends with non-2xx
// responses. Only Error is guaranteed; Message and Code appear on some routes.
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// NetworkError means no response was received: DNS, refused connection,
// TLS failure, reset.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: %s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError means the request was abandoned after the configured
// ceiling or because the caller's context deadline passed.
type TimeoutError struct {
	Method string
	Path   string
	Err    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("api: %s %s: timed out: %v", e.Method, e.Path, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response.
type ServerError struct {
	Method string
	Path   string
	Status int
	Body   ErrorBody
	Raw    []byte
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.Path, e.Status, e.Message())
}

// Message returns the most specific human readable reason available.
func (e *ServerError) Message() string {
	switch {
	case e.Body.Error != "":
		return e.Body.Error
	case e.Body.Message != "":
		return e.Body.Message
	default:
		return http.StatusText(e.Status)
	}
}

// AuthExpiredError is returned for 401 responses. The session has already
// been cleared when the caller sees it.
type AuthExpiredError struct {
	Server *ServerError
}

func (e *AuthExpiredError) Error() string {
	return "api: authentication expired: " + e.Server.Message()
}

func (e *AuthExpiredError) Unwrap() error { return e.Server }

// IsAuthExpired reports whether err is (or wraps) an *AuthExpiredError.
func IsAuthExpired(err error) bool {
	var ae *AuthExpiredError
	return errors.As(err, &ae)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// Error kinds used in logs and metrics.
const (
	KindNetwork     = "network"
	KindTimeout     = "timeout"
	KindServer      = "server"
	KindAuthExpired = "auth_expired"
	KindDecode      = "decode"
	KindInvalid     = "invalid_argument"
)

// ErrorKind classifies err into one of the Kind constants, or "" for nil.
func ErrorKind(err error) string {
	var (
		ae *AuthExpiredError
		se *ServerError
		te *TimeoutError
		ne *NetworkError
		de *DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ae):
		return KindAuthExpired
	case errors.As(err, &se):
		return KindServer
	case errors.As(err, &te):
		return KindTimeout
	case errors.As(err, &ne):
		return KindNetwork
	case errors.As(err, &de):
		return KindDecode
	default:
		return KindInvalid
	}
}

// DecodeError means a 2xx response body did not match the expected shape.
type DecodeError struct {
	Method string
	Path   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: %s %s: decode response: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// stageError marks an error returned by a response stage so it is not
// mistaken for a transport failure.
type stageError struct{ err error }

func (e *stageError) Error() string { return e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

// classifyTransport maps an error from resty into the taxonomy.
// Errors produced by response stages pass through unchanged.
func classifyTransport(method, path string, err error) error {
	var st *stageError
	if errors.As(err, &st) {
		return st.err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Method: method, Path: path, Err: err}
	}
	return &NetworkError{Method: method, Path: path, Err: err}
}
