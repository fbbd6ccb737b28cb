package auth

import "context"

// User is the public view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserStorage persists accounts. Lookups that match nothing return ErrUserNotFound.
type UserStorage interface {
	CreateUser(ctx context.Context, email, passwordDigest string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByCredentials(ctx context.Context, email, passwordDigest string) (*User, error)
}
