package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/svc/auth"
)

func TestWelcomeHandler(t *testing.T) {
	t.Parallel()

	users := auth.NewMemoryStorage()
	user, err := users.CreateUser(context.Background(), "bob@dylan.com", auth.PasswordDigest("pwd"))
	require.NoError(t, err)

	var buf bytes.Buffer
	h := auth.NewWelcomeHandler(users, slog.New(slog.NewTextHandler(&buf, nil)))
	assert.Equal(t, "welcome", h.Name())

	payload := func(job auth.WelcomeJob) json.RawMessage {
		data, err := json.Marshal(job)
		require.NoError(t, err)
		return data
	}

	require.NoError(t, h.Handle(context.Background(), payload(auth.WelcomeJob{UserID: user.ID})))
	assert.Contains(t, buf.String(), "Welcome bob@dylan.com!")

	err = h.Handle(context.Background(), payload(auth.WelcomeJob{}))
	assert.ErrorIs(t, err, auth.ErrMissingUserID)

	err = h.Handle(context.Background(), payload(auth.WelcomeJob{UserID: "5f1e7d0c9b1e8a3d4c2b1a00"}))
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
