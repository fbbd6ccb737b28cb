package session

import "errors"

var (
	// ErrInvalidSession indicates a session without token, user or lifetime.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionNotFound indicates no live session was found.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrStoreFailure wraps backend errors of a Store.
	ErrStoreFailure = errors.New("session.store_failure")
)
