package models

import "errors"

// Sentinel errors shared across repositories and handlers. Handlers map these
// to HTTP status codes; repositories never surface raw pgx errors.
var (
	// ErrNotFound is returned by point reads, updates and deletes on a
	// missing id. Updates check it explicitly so a missing row is never
	// silently upserted.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned on any login failure. Unknown email
	// and wrong password are deliberately not distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateEmail is returned when signup hits the users.email
	// unique constraint.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateRegistrationNumber is returned when society creation hits
	// the societies.registration_number unique constraint.
	ErrDuplicateRegistrationNumber = errors.New("registration number already in use")
)
