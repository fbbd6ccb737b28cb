package auth

import (
	"context"
)

type userIDContextKey struct{}

// SetUserIDToContext stores the authenticated user id for the rest of the middleware chain.
func SetUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext retrieves the authenticated user id.
// Returns an empty string for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDContextKey{}).(string)
	return userID
}
