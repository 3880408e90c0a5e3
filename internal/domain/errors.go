package domain

import "errors"

// Sentinel errors shared across repositories and services. Controllers map
// these onto HTTP statuses; anything else is treated as an internal failure.
var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRSVPNotFound       = errors.New("rsvp not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrEventPast          = errors.New("event has already ended")
)
