// Package ratelimiter provides token bucket rate limiting with memory and
// Redis storage plus HTTP middleware.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that finds too
// few tokens is denied and leaves the bucket as it was.
//
// # Basic Usage
//
//	store := ratelimiter.NewRedisStore(redisClient)
//	limiter, err := ratelimiter.NewBucket(store, cfg)
//	if err != nil {
//		return err
//	}
//
//	result, err := limiter.Allow(ctx, "connect:203.0.113.7")
//	if err == nil && !result.Allowed() {
//		// retry after result.RetryAfter()
//	}
//
// MemoryStore serves single-process deployments and tests. Close it to stop
// its cleanup goroutine.
//
// # HTTP Middleware
//
//	keyFunc := ratelimiter.Composite(ratelimiter.Static("connect"), clientip.KeyFunc)
//	r.With(ratelimiter.Middleware(limiter, keyFunc,
//		ratelimiter.WithErrorHandler(writeJSONError),
//	)).Get("/connect", connect)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every checked request and Retry-After on denials.
// Denials reach the error handler as ErrLimitExceeded.
package ratelimiter
