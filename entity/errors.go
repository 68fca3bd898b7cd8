package entity

import "errors"

// Sentinel errors shared by services and mapped to HTTP statuses in the
// controllers. Wrap with fmt.Errorf("...: %w", err) to add context.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")

	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAlreadyJoined        = errors.New("already joined this event")
	ErrEventFull            = errors.New("event is full")
	ErrNotJoined            = errors.New("not joined this event")
	ErrOrganizerCannotLeave = errors.New("organizer cannot leave their own event")
)
