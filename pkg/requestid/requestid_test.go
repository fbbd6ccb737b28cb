package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/pkg/requestid"
)

func serve(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()

	var seen string
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates id", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, "")
		require.Len(t, id, 36)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses valid header", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, "abc-123_x")
		assert.Equal(t, "abc-123_x", id)
		assert.Equal(t, "abc-123_x", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces invalid header", func(t *testing.T) {
		t.Parallel()
		id, _ := serve(t, "bad id;drop")
		assert.NotEqual(t, "bad id;drop", id)
		assert.Len(t, id, 36)
	})

	t.Run("replaces oversized header", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("a", 200)
		id, _ := serve(t, long)
		assert.NotEqual(t, long, id)
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "req-1"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())
}
