// Package apperr defines the business error kinds surfaced to the HTTP
// boundary. Handlers branch on the kind, never on message text.
package apperr

import "errors"

type Kind int

const (
	// KindValidation marks malformed or missing required input.
	KindValidation Kind = iota
	// KindAuth marks credential, status, and secret failures. The message
	// is deliberately the same for unknown users and wrong passwords.
	KindAuth
	// KindConflict marks uniqueness violations detected by a pre-check.
	KindConflict
	// KindNotFound marks an entity absent on a by-id or by-name read.
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error { return New(KindValidation, message) }
func Auth(message string) *Error       { return New(KindAuth, message) }
func Conflict(message string) *Error   { return New(KindConflict, message) }
func NotFound(message string) *Error   { return New(KindNotFound, message) }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
