// Package apperr defines the typed errors services return. httpkit maps the
// kind to a status code; everything untyped becomes a 500.
package apperr

import (
	"errors"
	"net/http"
)

// Kind names an error category. The value is stable and safe to log.
type Kind string

const (
	KindUnknown      Kind = ""
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindForbidden    Kind = "forbidden"
	KindUnauthorized Kind = "unauthorized"
	KindBadRequest   Kind = "bad_request"
	KindInternal     Kind = "internal"
	KindGone         Kind = "gone"
	// KindInvalidState rejects a lifecycle transition the entity is not in a
	// position to make, such as sending a draft message.
	KindInvalidState Kind = "invalid_state"
)

var statusByKind = map[Kind]int{
	KindNotFound:     http.StatusNotFound,
	KindValidation:   http.StatusBadRequest,
	KindBadRequest:   http.StatusBadRequest,
	KindConflict:     http.StatusConflict,
	KindInvalidState: http.StatusConflict,
	KindForbidden:    http.StatusForbidden,
	KindUnauthorized: http.StatusUnauthorized,
	KindInternal:     http.StatusInternalServerError,
	KindGone:         http.StatusGone,
}

type Error struct {
	Kind    Kind
	Message string
	// Details is serialized into the response body as-is.
	Details any
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus returns the status for the kind; unknown kinds are treated as
// bad requests.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusBadRequest
}

// WithDetails sets the response details and returns e.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Validation(message string) *Error   { return New(KindValidation, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func BadRequest(message string) *Error   { return New(KindBadRequest, message) }
func Internal(message string) *Error     { return New(KindInternal, message) }
func Gone(message string) *Error         { return New(KindGone, message) }
func InvalidState(message string) *Error { return New(KindInvalidState, message) }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err wraps an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return kind != KindUnknown && KindOf(err) == kind
}
