package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/queue"
)

// WelcomeJob is enqueued after registration.
type WelcomeJob struct {
	UserID string `json:"userId"`
}

// TaskName routes the job to the welcome handler.
func (WelcomeJob) TaskName() string {
	return "welcome"
}

// NewWelcomeHandler greets newly registered users.
func NewWelcomeHandler(users UserStorage, log *slog.Logger) queue.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return queue.NewTaskHandler(func(ctx context.Context, job WelcomeJob) error {
		if job.UserID == "" {
			return ErrMissingUserID
		}
		user, err := users.GetUserByID(ctx, job.UserID)
		if errors.Is(err, ErrUserNotFound) {
			return fmt.Errorf("welcome %s: %w", job.UserID, err)
		}
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		log.InfoContext(ctx, "Welcome "+user.Email+"!",
			logger.UserID(user.ID),
			logger.Event("welcome"),
		)
		return nil
	})
}
