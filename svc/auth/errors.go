package auth

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrMalformedCredentials = errors.New("malformed basic credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyExists        = errors.New("user already exists")
)

// Input errors
var (
	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")
	ErrMissingUserID   = errors.New("missing user id")
)
