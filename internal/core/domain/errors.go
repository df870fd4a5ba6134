package domain

import (
	"errors"
	"fmt"
)

// Error codes. They identify failures raised inside the client, before a
// request is sent; backend failures are reported by the api package.
const (
	CodeInvalidArgument = "TG-ARG-1001"
	CodeMissingArgument = "TG-ARG-1002"
	CodeNotLoggedIn     = "TG-SESS-4010"
)

var (
	// ErrInvalidArgument is returned for a malformed or out-of-range input.
	ErrInvalidArgument = NewDomainError(CodeInvalidArgument, "invalid argument")

	// ErrMissingArgument is returned when a required input is empty.
	ErrMissingArgument = NewDomainError(CodeMissingArgument, "missing required argument")

	// ErrNotLoggedIn is returned by operations that need a session when
	// none is held. No request is sent.
	ErrNotLoggedIn = NewDomainError(CodeNotLoggedIn, "not logged in")
)

// DomainError is a client-side error with a stable code. Two DomainErrors
// match under errors.Is when their codes are equal, so sentinel values
// keep matching after WithDetails.
type DomainError struct {
	Code    string
	Message string
	Details string
	Cause   error
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Summary())
}

// Summary is the message without the code, as shown to users.
func (e *DomainError) Summary() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func (e *DomainError) Unwrap() error { return e.Cause }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Code == t.Code
}

// WithDetails returns a copy carrying details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// IsDomainError reports whether err wraps a DomainError with code, or any
// DomainError when code is empty.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return code == "" || de.Code == code
}

// CodeOf returns the code of the DomainError in err's chain, or "".
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
