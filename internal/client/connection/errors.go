package connection

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an exchange with the backend failed
type FailureKind string

const (
	// FailureNetwork means the request never produced an HTTP response
	FailureNetwork FailureKind = "network"
	// FailureStatus means the backend answered with a non-2xx status
	FailureStatus FailureKind = "status"
	// FailureMalformed means the body could not be decoded
	FailureMalformed FailureKind = "malformed"
)

// Messages shown to the user. The status message matches the web client's wording.
const (
	msgNetwork   = "failed to fetch"
	msgStatus    = "API sorğusu uğursuz oldu"
	msgMalformed = "invalid response body"
)

// Error is a failed exchange with the backend
type Error struct {
	Kind  FailureKind
	Op    string // "analyze" or "health"
	Code  int    // HTTP status code, 0 if none was received
	Msg   string
	Cause error
}

// Error returns the user-facing description
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status code, or 0 if not applicable
func (e *Error) StatusCode() int {
	return e.Code
}

func networkError(op string, cause error) *Error {
	return &Error{Kind: FailureNetwork, Op: op, Msg: msgNetwork, Cause: cause}
}

func statusError(op string, code int) *Error {
	return &Error{Kind: FailureStatus, Op: op, Code: code, Msg: msgStatus}
}

func malformedError(op string, code int, cause error) *Error {
	return &Error{Kind: FailureMalformed, Op: op, Code: code, Msg: msgMalformed, Cause: cause}
}

// KindOf returns the failure kind of err, or "" if err is not a backend failure
func KindOf(err error) FailureKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
