package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as "<prefix><token>" -> "<userID>" keys whose
// lifetime is the native Redis TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the key prefix. Default is "auth_".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a Redis backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "auth_",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if !session.valid() {
		return ErrInvalidSession
	}

	ttl := session.TTL()
	if ttl <= 0 {
		return ErrInvalidSession
	}

	if err := s.client.Set(ctx, s.key(session.Token), session.UserID, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	key := s.key(token)
	var (
		get  *redis.StringCmd
		pttl *redis.DurationCmd
	)
	_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		get = p.Get(ctx, key)
		pttl = p.PTTL(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	userID, err := get.Result()
	if errors.Is(err, redis.Nil) || userID == "" {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	session := &Session{Token: token, UserID: userID}
	// PTTL is negative for keys without expiry.
	if ttl := pttl.Val(); ttl > 0 {
		session.ExpiresAt = time.Now().Add(ttl)
	}
	return session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionNotFound
	}

	n, err := s.client.Del(ctx, s.key(token)).Result()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
