package services

import "errors"

// Service-level errors. Controllers map these onto HTTP statuses; the
// messages are safe to return to clients verbatim.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("class is already cancelled or completed")
	ErrClassNotOpen       = errors.New("class is not open for enrollment")
	ErrClassFull          = errors.New("class is full")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this class")
	ErrNotEnrolled        = errors.New("not enrolled in this class")
	ErrResetCodeInvalid   = errors.New("invalid or expired reset code")
)
