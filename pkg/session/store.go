package session

import "context"

// Store defines the interface for session persistence.
type Store interface {
	// Create stores a new session; it expires on its own at ExpiresAt.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token. Missing or expired sessions
	// return ErrSessionNotFound.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Returns ErrSessionNotFound
	// when nothing was removed.
	Delete(ctx context.Context, token string) error
}
