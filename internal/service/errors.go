package service

import "errors"

// Domain errors. Handlers translate these into HTTP codes and the short
// user-facing messages the UI shows.
var (
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrPasswordMismatch     = errors.New("new passwords do not match")
	ErrPasswordTooShort     = errors.New("new password must have at least 4 characters")
	ErrInvalidToken         = errors.New("invalid token")
	ErrCarNotFound          = errors.New("car not found")
	ErrRecordNotFound       = errors.New("record not found")
)
