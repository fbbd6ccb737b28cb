package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session

	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore creates an in-memory store. A positive cleanupInterval
// starts a goroutine that evicts expired sessions; stop it with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]Session),
		stop:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go store.evictLoop(time.NewTicker(cleanupInterval))
	}

	return store
}

func (m *MemoryStore) Create(ctx context.Context, session *Session) error {
	if !session.valid() {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.Token] = *session
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()

	switch {
	case !ok:
		return nil, ErrSessionNotFound
	case session.IsExpired():
		// Expired entries are also dropped on read.
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[token]
	if !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, token)

	if session.IsExpired() {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes all expired sessions.
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, session := range m.sessions {
		if session.IsExpired() {
			delete(m.sessions, token)
		}
	}

	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() { close(m.stop) })
	return nil
}

func (m *MemoryStore) evictLoop(ticker *time.Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.stop:
			return
		}
	}
}
