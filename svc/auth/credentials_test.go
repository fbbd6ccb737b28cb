package auth_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/svc/auth"
)

func basic(value string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(value))
}

func TestPasswordDigest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a94a8fe5ccb19ba61c4c0873d391e987982fbbd3", auth.PasswordDigest("test"))
	assert.Len(t, auth.PasswordDigest(""), 40)
}

func TestParseBasicCredentials(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		email, password, err := auth.ParseBasicCredentials(basic("bob@dylan.com:toto1234!"))
		require.NoError(t, err)
		assert.Equal(t, "bob@dylan.com", email)
		assert.Equal(t, "toto1234!", password)
	})

	t.Run("password with colon", func(t *testing.T) {
		t.Parallel()
		email, password, err := auth.ParseBasicCredentials(basic("a@b.c:pa:ss"))
		require.NoError(t, err)
		assert.Equal(t, "a@b.c", email)
		assert.Equal(t, "pa:ss", password)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"wrong scheme", "Bearer abc"},
		{"invalid base64", "Basic %%%"},
		{"no colon", basic("bob@dylan.com")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := auth.ParseBasicCredentials(tt.header)
			assert.ErrorIs(t, err, auth.ErrMalformedCredentials)
		})
	}
}
