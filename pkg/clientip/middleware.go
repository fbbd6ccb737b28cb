package clientip

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// WithIP returns a copy of ctx carrying ip.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// FromContext returns the IP stored by WithIP or Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ctxKey{}).(string)
	return ip
}

// Middleware resolves the client IP once per request and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithIP(r.Context(), GetIP(r))))
	})
}

// KeyFunc returns the client IP of r, from the context when Middleware ran.
// It fits ratelimiter.KeyFunc.
func KeyFunc(r *http.Request) string {
	if ip := FromContext(r.Context()); ip != "" {
		return ip
	}
	return GetIP(r)
}
