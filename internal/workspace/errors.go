package workspace

import (
	"errors"
	"fmt"

	"taskdeck/internal/storage/sqlite"
)

// Kind classifies every failure a command can surface. Write operations
// always return one of these four; read projections fail open instead.
type Kind string

const (
	KindNotAuthorized Kind = "NotAuthorized"
	KindNotFound      Kind = "NotFound"
	KindValidation    Kind = "ValidationError"
	KindPersistence   Kind = "PersistenceError"
)

// Error is a tagged failure with an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func errNotAuthorized() *Error {
	return &Error{Kind: KindNotAuthorized, Message: "not a member of this workspace"}
}

func errNotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func errValidation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// errPersistence wraps a store failure, classifying missing rows as NotFound
// so callers see the specific kind rather than a generic persistence error.
func errPersistence(op string, cause error) *Error {
	if errors.Is(cause, sqlite.ErrNotFound) {
		return &Error{Kind: KindNotFound, Message: op, cause: cause}
	}
	return &Error{Kind: KindPersistence, Message: op, cause: cause}
}

// KindOf extracts the kind from an error returned by this package.
// Unrecognized errors classify as PersistenceError.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}
