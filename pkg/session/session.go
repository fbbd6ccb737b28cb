package session

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque token to a user until ExpiresAt.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession issues a session with a random UUID v4 token.
func NewSession(userID string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s != nil && !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// TTL returns the remaining lifetime, zero once expired.
func (s *Session) TTL() time.Duration {
	if s == nil {
		return 0
	}
	return max(time.Until(s.ExpiresAt), 0)
}

func (s *Session) valid() bool {
	return s != nil && s.Token != "" && s.UserID != ""
}
