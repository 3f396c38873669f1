// Package common defines shared constants, roles and the error taxonomy used
// by the identity and resource services. Callers match errors with errors.Is
// against the sentinel values below or switch on KindOf(err); message text is
// for humans only.
package common

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure classes an operation can report.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
	KindInvalidToken
	KindExpiredToken
	KindMissingAuth
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindInvalidToken:
		return "invalid_token"
	case KindExpiredToken:
		return "expired_token"
	case KindMissingAuth:
		return "missing_auth"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error carries a Kind, a short user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality so that errors.Is(err, ErrConflict) holds for any
// conflict regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err. Errors outside the
// taxonomy never expose their text.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal error"
}

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Kind sentinels for errors.Is.
	ErrInternal     = NewError(KindInternal, "Internal error", nil)
	ErrValidation   = NewError(KindValidation, "Validation error", nil)
	ErrConflict     = NewError(KindConflict, "Conflict", nil)
	ErrNotFound     = NewError(KindNotFound, "Not found", nil)
	ErrAuth         = NewError(KindAuth, "Invalid credentials", nil)
	ErrInvalidToken = NewError(KindInvalidToken, "Invalid token", nil)
	ErrTokenExpired = NewError(KindExpiredToken, "Token expired", nil)
	ErrMissingAuth  = NewError(KindMissingAuth, "Missing or invalid Authorization header", nil)
	ErrUnauthorized = NewError(KindUnauthorized, "Unauthorized", nil)
)
