package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/queue"
	"github.com/dmitrymomot/filemanager/pkg/session"
)

// DefaultSessionTTL is how long a token issued by Connect stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Enqueuer schedules background jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, payload any, opts ...queue.EnqueueOption) error
}

// Service issues and revokes session tokens and manages accounts.
type Service struct {
	users      UserStorage
	sessions   session.Store
	enqueuer   Enqueuer
	sessionTTL time.Duration
	logger     *slog.Logger

	afterRegister func(ctx context.Context, user *User) error
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSessionTTL sets the lifetime of issued tokens.
func WithSessionTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithEnqueuer enables the welcome job after registration.
func WithEnqueuer(e Enqueuer) ServiceOption {
	return func(s *Service) {
		s.enqueuer = e
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAfterRegister sets a hook that runs after successful registration.
// Its error is logged and does not fail the registration.
func WithAfterRegister(fn func(context.Context, *User) error) ServiceOption {
	return func(s *Service) {
		s.afterRegister = fn
	}
}

// NewService creates the account service.
func NewService(users UserStorage, sessions session.Store, opts ...ServiceOption) *Service {
	s := &Service{
		users:      users,
		sessions:   sessions,
		sessionTTL: DefaultSessionTTL,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect authenticates the Basic authorization header and issues a token.
// Malformed headers and unknown credentials both return an error matching ErrUnauthorized.
func (s *Service) Connect(ctx context.Context, authorization string) (string, error) {
	email, password, err := ParseBasicCredentials(authorization)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := s.users.GetUserByCredentials(ctx, email, PasswordDigest(password))
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	sess := session.NewSession(user.ID, s.sessionTTL)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.InfoContext(ctx, "user connected",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)
	return sess.Token, nil
}

// Disconnect revokes token. An unknown or already revoked token returns ErrUnauthorized.
func (s *Service) Disconnect(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Register creates an account and schedules the welcome job.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user, err := s.users.CreateUser(ctx, email, PasswordDigest(password))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.Enqueue(ctx, WelcomeJob{UserID: user.ID}); err != nil {
			s.logger.ErrorContext(ctx, "failed to enqueue welcome job",
				logger.UserID(user.ID),
				logger.Error(err),
				logger.Component("auth"),
			)
		}
	}

	if s.afterRegister != nil {
		if err := s.afterRegister(ctx, user); err != nil {
			s.logger.ErrorContext(ctx, "afterRegister hook failed",
				logger.UserID(user.ID),
				logger.Error(err),
				logger.Component("auth"),
			)
		}
	}

	return user, nil
}

// Me returns the account behind an authenticated user id.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
