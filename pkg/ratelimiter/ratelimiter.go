package ratelimiter

import (
	"context"
	"fmt"
)

// RateLimiter defines the interface for rate limiting implementations.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
	AllowN(ctx context.Context, key string, n int) (*Result, error)
}

// Bucket is a token bucket limiter. Every key gets its own bucket in store,
// namespaced by Config.KeyPrefix.
type Bucket struct {
	store Store
	cfg   Config
}

// NewBucket validates cfg and returns a limiter backed by store.
func NewBucket(store Store, cfg Config) (*Bucket, error) {
	switch {
	case cfg.Capacity <= 0:
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidConfig, cfg.Capacity)
	case cfg.RefillRate <= 0:
		return nil, fmt.Errorf("%w: refill rate %d", ErrInvalidConfig, cfg.RefillRate)
	case cfg.RefillInterval <= 0:
		return nil, fmt.Errorf("%w: refill interval %v", ErrInvalidConfig, cfg.RefillInterval)
	}
	return &Bucket{store: store, cfg: cfg}, nil
}

// Allow takes a single token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (*Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN takes n tokens for key. The returned Result reports whether they were available.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}

	remaining, resetAt, err := b.store.ConsumeTokens(ctx, b.cfg.KeyPrefix+key, n, b.cfg)
	if err != nil {
		return nil, err
	}
	return &Result{Limit: b.cfg.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}

// Reset drops the bucket for key so it starts full again.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, b.cfg.KeyPrefix+key)
}
