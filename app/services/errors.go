package services

import (
	"errors"

	"picshare/app/repositories"
)

// Error kinds. Every error returned by this package wraps exactly one.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStore        = errors.New("store error")
)

// Error pairs an error kind with the message shown to clients. Cause, when
// set, is the underlying failure.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Message returns the client-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Cause returns the underlying failure of err, or nil.
func Cause(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Cause
	}
	return nil
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}

func storeError(msg string, cause error) error {
	return &Error{Kind: ErrStore, Message: msg, Cause: cause}
}

// lookupError turns a repository miss into notFound(missing) and anything
// else into a store error.
func lookupError(err error, missing, failed string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(missing)
	}
	return storeError(failed, err)
}
