package auth

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStorage is an in-process UserStorage for tests and local runs.
type MemoryStorage struct {
	mu    sync.RWMutex
	users map[string]userDocument
}

// NewMemoryStorage creates an empty storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{users: make(map[string]userDocument)}
}

func (s *MemoryStorage) CreateUser(_ context.Context, email, passwordDigest string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.users {
		if doc.Email == email {
			return nil, ErrAlreadyExists
		}
	}
	doc := userDocument{ID: bson.NewObjectID(), Email: email, Password: passwordDigest}
	s.users[doc.ID.Hex()] = doc
	return doc.user(), nil
}

func (s *MemoryStorage) GetUserByID(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return doc.user(), nil
}

func (s *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*User, error) {
	return s.find(func(d userDocument) bool { return d.Email == email })
}

func (s *MemoryStorage) GetUserByCredentials(_ context.Context, email, passwordDigest string) (*User, error) {
	return s.find(func(d userDocument) bool { return d.Email == email && d.Password == passwordDigest })
}

// CountUsers returns the number of stored accounts.
func (s *MemoryStorage) CountUsers(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *MemoryStorage) find(match func(userDocument) bool) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.users {
		if match(doc) {
			return doc.user(), nil
		}
	}
	return nil, ErrUserNotFound
}
