package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a request-terminating failure.
type Kind int

const (
	KindMissingCredential Kind = iota + 1
	KindInvalidCredential
	KindDuplicateEmail
	KindUserNotFound
	KindWrongPassword
	KindInvalidInput
	KindSongNotFound
)

// Error is a failure that maps to a fixed HTTP status and a short message safe
// to return to the client.
type Error struct {
	kind    Kind
	status  int
	message string
}

// New builds an Error of the given kind.
func New(kind Kind, status int, message string) *Error {
	return &Error{kind: kind, status: status, message: message}
}

func (e *Error) Error() string { return e.message }

// Kind reports the error classification.
func (e *Error) Kind() Kind { return e.kind }

// Status is the HTTP status code the error resolves to.
func (e *Error) Status() int { return e.status }

// Message is the client-facing text.
func (e *Error) Message() string { return e.message }

// Is matches on kind so that variants sharing a kind (for example the 400 and
// 404 flavours of a missing user) satisfy errors.Is against each other.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.kind == e.kind
}

// WithMessage returns a copy of the error carrying a different client message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{kind: e.kind, status: e.status, message: message}
}

var (
	ErrMissingCredential = New(KindMissingCredential, http.StatusUnauthorized, "No auth token, access denied!")
	ErrInvalidCredential = New(KindInvalidCredential, http.StatusUnauthorized, "Token is not valid, authorization failed.")
	ErrDuplicateEmail    = New(KindDuplicateEmail, http.StatusBadRequest, "User with the same email already exists!")
	ErrWrongPassword     = New(KindWrongPassword, http.StatusBadRequest, "Incorrect password!")

	// ErrUnknownEmail is returned by login; it is a user-not-found error that
	// resolves to 400 rather than 404.
	ErrUnknownEmail = New(KindUserNotFound, http.StatusBadRequest, "User with this email does not exist!")
	ErrUserNotFound = New(KindUserNotFound, http.StatusNotFound, "User not found!")

	ErrInvalidInput = New(KindInvalidInput, http.StatusBadRequest, "invalid request")
	ErrSongNotFound = New(KindSongNotFound, http.StatusNotFound, "Song not found!")
)

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
