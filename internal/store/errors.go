package store

import (
	"civic_reports/internal/db" // Database helpers
	"errors"                    // Error inspection
)

// Error kinds. Every error returned by the store unwraps to one of these.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorage            = errors.New("storage error")
)

// Error carries a human readable message on top of its kind
type Error struct {
	Kind  error  // One of the kinds above
	Msg   string // Message safe to show to clients
	Cause error  // Underlying driver error, if any
}

func (e *Error) Error() string { return e.Msg }

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Well known errors
var (
	ErrIssueNotFound     = &Error{Kind: ErrNotFound, Msg: "Issue not found"}
	ErrUserNotFound      = &Error{Kind: ErrNotFound, Msg: "User not found"}
	ErrAlreadyVoted      = &Error{Kind: ErrConflict, Msg: "You have already voted on this issue"}
	ErrDuplicateUsername = &Error{Kind: ErrConflict, Msg: "Username already exists"}
	ErrDuplicateEmail    = &Error{Kind: ErrConflict, Msg: "Email already exists"}
	ErrBadCredentials    = &Error{Kind: ErrInvalidCredentials, Msg: "Invalid credentials"}
)

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func storageError(err error) error {
	return &Error{Kind: ErrStorage, Msg: "Database error", Cause: err}
}

// isDuplicateKey reports whether err is a unique index violation
func isDuplicateKey(err error) bool {
	return db.IsDuplicateKey(err)
}
