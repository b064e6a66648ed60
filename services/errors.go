package services

import "errors"

// Sentinel errors surfaced to the request boundary, where controllers map
// them to HTTP statuses with errors.Is.
var (
	// ErrDuplicateUser: registration with an email that already exists.
	ErrDuplicateUser = errors.New("user with this email already exists")

	// ErrDuplicateRole: creating a role whose value already exists.
	ErrDuplicateRole = errors.New("role with this value already exists")

	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// Login must not reveal which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound: a referenced user or role does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRoleNotSeeded: the default role is missing from storage. This is a
	// configuration error, not something a client can fix by retrying.
	ErrRoleNotSeeded = errors.New("default role is not seeded")
)
