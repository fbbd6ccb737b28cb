package auth

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

const basicScheme = "Basic "

// PasswordDigest returns the lowercase hex SHA-1 digest stored for passwords.
func PasswordDigest(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// ParseBasicCredentials decodes an "Authorization: Basic <base64(email:password)>"
// header value. The password is everything after the first colon.
func ParseBasicCredentials(header string) (email, password string, err error) {
	if len(header) < len(basicScheme) || !strings.EqualFold(header[:len(basicScheme)], basicScheme) {
		return "", "", ErrMalformedCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(basicScheme):]))
	if err != nil {
		return "", "", ErrMalformedCredentials
	}

	email, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", ErrMalformedCredentials
	}
	return email, password, nil
}
