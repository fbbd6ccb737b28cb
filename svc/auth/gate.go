package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/filemanager/handler"
	"github.com/dmitrymomot/filemanager/pkg/session"
)

// Gate turns session tokens into user ids.
type Gate struct {
	sessions  session.Store
	transport session.Transport
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithTransport overrides where middleware reads the token from.
func WithTransport(t session.Transport) GateOption {
	return func(g *Gate) {
		if t != nil {
			g.transport = t
		}
	}
}

// NewGate creates a gate reading the X-Token header by default.
func NewGate(sessions session.Store, opts ...GateOption) *Gate {
	g := &Gate{
		sessions:  sessions,
		transport: session.NewHeaderTransport(session.DefaultHeader),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolve returns the user id owning token, or "" for an empty, unknown
// or expired token. Only store failures are errors.
func (g *Gate) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	sess, err := g.sessions.Get(ctx, token)
	if errors.Is(err, session.ErrSessionNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	return sess.UserID, nil
}

// Require is Resolve that treats anonymous callers as ErrUnauthorized.
func (g *Gate) Require(ctx context.Context, token string) (string, error) {
	userID, err := g.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", ErrUnauthorized
	}
	return userID, nil
}

// Token reads the raw token from the request, "" when absent.
func (g *Gate) Token(r *http.Request) string {
	token, err := g.transport.GetToken(r)
	if err != nil {
		return ""
	}
	return token
}

// RequireUser rejects anonymous requests with ErrUnauthorized through
// errorHandler and stores the user id in the context otherwise.
func (g *Gate) RequireUser(errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return g.middleware(g.Require, errorHandler)
}

// OptionalUser stores the user id in the context when the token is valid
// and lets anonymous requests through.
func (g *Gate) OptionalUser(errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return g.middleware(g.Resolve, errorHandler)
}

func (g *Gate) middleware(resolve func(context.Context, string) (string, error), errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := resolve(r.Context(), g.Token(r))
			if err != nil {
				if errorHandler == nil {
					http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
					return
				}
				errorHandler(handler.NewContext(w, r), err)
				return
			}
			if userID != "" {
				r = r.WithContext(SetUserIDToContext(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}
