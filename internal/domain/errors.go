package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEventNotActive is returned when a check-in is attempted against an
	// event that is not in the active status.
	ErrEventNotActive = errors.New("event is not active")

	// ErrAlreadyCheckedIn is returned by the conditional check-in update when
	// the participant row was already in the checked_in status at write time.
	ErrAlreadyCheckedIn = errors.New("participant already checked in")
)
