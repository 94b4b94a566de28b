package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("service unavailable")
)

// Error carries a client facing message on top of one of the sentinels
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError errors.Is(err, kind) holds for the result
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}
