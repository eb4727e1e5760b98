package errprocess

import (
	"errors"
	"fmt"

	"drift_chronicles_service/pkg/logger"
)

// Kind classify error for the caller's retry/abandon decision
type Kind string

const (
	// KindValidation caller-supplied data violates an invariant
	KindValidation Kind = "validation"
	// KindNotFound referenced entity does not exist
	KindNotFound Kind = "not_found"
	// KindAlreadyClaimed claim lost the race, caller should retry matchmaking
	KindAlreadyClaimed Kind = "already_claimed"
	// KindPermission operation on an inactive or ineligible entity
	KindPermission Kind = "permission"
	// KindStorage commit failed for infrastructure reasons, never partially applied
	KindStorage Kind = "storage"
)

// Error carries a Kind alongside the message
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Unwrap expose the cause for errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind get the error kind
func (e *Error) Kind() Kind {
	return e.kind
}

// New create a typed error
func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Newf create a typed error with formatting
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attach a kind and message to an underlying error
func Wrap(kind Kind, msg string, cause error) error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// KindOf extract the kind from an error chain, empty when untyped
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}

// IsKind check err carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}
