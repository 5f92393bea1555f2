package mcp

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies invocation failures
type Kind string

const (
	KindUnknownTool      Kind = "unknown_tool"
	KindMissingParameter Kind = "missing_parameter"
	KindInvalidParameter Kind = "invalid_parameter"
	KindNotFound         Kind = "not_found"
	KindNotInitialized   Kind = "not_initialized"
	KindUpstream         Kind = "upstream_error"
	KindInternal         Kind = "internal"
)

// HTTPStatus maps a kind onto the status code of the invoke endpoint
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnknownTool, KindMissingParameter, KindInvalidParameter:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the classified failure returned by tools and the router.
// Message is shown to callers; Err is kept for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err; unclassified errors are internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-facing message of err
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

func UnknownTool(name string) *Error {
	return &Error{Kind: KindUnknownTool, Message: fmt.Sprintf("Unknown tool: %s", name)}
}

func MissingParameter(field string) *Error {
	return &Error{Kind: KindMissingParameter, Message: fmt.Sprintf("%s is required", field)}
}

func InvalidParameter(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidParameter, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NotInitialized(what string) *Error {
	return &Error{
		Kind:    KindNotInitialized,
		Message: fmt.Sprintf("%s not initialized. Please check configuration.", what),
	}
}

// Upstream wraps a failure of the external job source; the cause text is surfaced
func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: err.Error(), Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}
