package domain

import "errors"

// ErrorKind classifies domain failures independently of transport
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindForbidden         ErrorKind = "forbidden"
	KindConflict          ErrorKind = "conflict"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindValidationFailed  ErrorKind = "validation_failed"
	KindUnprocessable     ErrorKind = "unprocessable"
	KindInternal          ErrorKind = "internal"
)

// Error is a classified domain error. Packages declare sentinels with NewError
// and wrap details with fmt.Errorf("%w: ...").
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates a classified error
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of the first domain error in the chain, KindInternal otherwise
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// ErrInvalidTransition is returned for status moves missing from the transition table
var ErrInvalidTransition = NewError(KindInvalidTransition, "booking: invalid status transition")
