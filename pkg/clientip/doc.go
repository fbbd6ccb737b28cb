// Package clientip resolves the originating client address of a request
// behind reverse proxies.
//
// GetIP checks X-Forwarded-For, then X-Real-IP, then RemoteAddr. Middleware
// stores the result in the request context for access logs and rate limit
// keys:
//
//	r.Use(clientip.Middleware)
//	ip := clientip.FromContext(r.Context())
//
// Only put this behind proxies you control: the headers are client supplied.
package clientip
