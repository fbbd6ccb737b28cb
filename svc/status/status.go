package status

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Counter returns the number of stored items.
type Counter func(ctx context.Context) (int64, error)

// Status tells whether the backing services respond.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats holds the number of users and file records.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Service reports application health and counters.
type Service struct {
	redis Check
	db    Check
	users Counter
	files Counter
}

// NewService creates the status service.
func NewService(redis, db Check, users, files Counter) *Service {
	return &Service{redis: redis, db: db, users: users, files: files}
}

// Status runs both checks concurrently. A failing check reads as false.
func (s *Service) Status(ctx context.Context) Status {
	var st Status
	var g errgroup.Group
	g.Go(func() error {
		st.Redis = s.redis(ctx) == nil
		return nil
	})
	g.Go(func() error {
		st.DB = s.db(ctx) == nil
		return nil
	})
	_ = g.Wait()
	return st
}

// Stats counts users and files.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users(ctx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		st.Users = n
		return nil
	})
	g.Go(func() error {
		n, err := s.files(ctx)
		if err != nil {
			return fmt.Errorf("failed to count files: %w", err)
		}
		st.Files = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return st, nil
}
