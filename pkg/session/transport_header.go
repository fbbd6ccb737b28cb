package session

import (
	"net/http"
	"strings"
	"time"
)

// DefaultHeader carries the session token of API clients.
const DefaultHeader = "X-Token"

// HeaderTransport implements Transport using HTTP headers.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// NewHeaderTransport creates a header transport. The value is the raw token
// unless a prefix is configured with WithHeaderPrefix.
func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	if headerName == "" {
		headerName = DefaultHeader
	}
	t := &HeaderTransport{headerName: headerName}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// HeaderOption is a functional option for HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets a prefix for the header value, e.g. "Bearer ".
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// GetToken extracts the session token from the header.
func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimSpace(r.Header.Get(t.headerName))
	if t.prefix != "" {
		value = strings.TrimPrefix(value, t.prefix)
	}
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

// SetToken sends the session token in the response header.
func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	w.Header().Set(t.headerName, t.prefix+token)
	if ttl > 0 {
		w.Header().Set(t.headerName+"-Expires", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	}
	return nil
}

// ClearToken removes the session header from the response.
func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	w.Header().Del(t.headerName + "-Expires")
	return nil
}
