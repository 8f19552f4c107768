// Package apperr classifies failures so the HTTP layer can map them to
// status codes without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Unknown covers errors produced outside this package.
	Unknown Kind = iota
	// Validation: malformed or missing input, caller's fault.
	Validation
	// Authorization: the actor lacks rights for the operation.
	Authorization
	// NotFound: a referenced entity does not exist.
	NotFound
	// Conflict: unique-constraint violation (duplicate email/username).
	Conflict
	// Upstream: store or external-service failure, possibly transient.
	Upstream
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf walks the wrap chain and returns the kind of the outermost
// classified error, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Unknown
}

// Message returns the user-facing message of a classified error. For
// unclassified errors it returns a generic message so internals never
// leak to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return "Internal server error"
}
