package ratelimiter

import (
	"errors"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
)

// maxKeyLength is the maximum allowed length for a rate limit key
// to prevent excessively long storage keys.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// Static returns a key function that always yields key. Combined with
// Composite it gives each route its own bucket.
func Static(key string) KeyFunc {
	return func(*http.Request) string { return key }
}

// Composite combines multiple key functions into one.
// Long keys (>64 chars) are hashed using FNV-1a for storage efficiency.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		// Collect non-empty parts
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		// Handle empty case
		if len(parts) == 0 {
			return ""
		}

		// Single key optimization
		if len(parts) == 1 && len(parts[0]) <= maxKeyLength {
			return parts[0]
		}

		// Join multiple parts
		combined := strings.Join(parts, ":")

		// Hash if too long using FNV-1a (fast, simple, built-in)
		if len(combined) > maxKeyLength {
			h := fnv.New64a()
			h.Write([]byte(combined))
			// Base36 encoding for compact output (~13 chars)
			return strconv.FormatUint(h.Sum64(), 36)
		}

		return combined
	}
}

// ErrorHandler writes the response for a denied or failed check. err is
// ErrLimitExceeded for a denial.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

type middlewareOptions struct {
	errorHandler ErrorHandler
}

// WithErrorHandler replaces the default plain-text error responses.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.errorHandler = h
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	if errors.Is(err, ErrLimitExceeded) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// Middleware creates an HTTP middleware for rate limiting.
// Requests whose key is empty are not limited.
func Middleware(limiter RateLimiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				o.errorHandler(w, r, err)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				if retryAfter := int(result.RetryAfter().Seconds()); retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				}
				o.errorHandler(w, r, ErrLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
