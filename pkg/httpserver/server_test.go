package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/pkg/httpserver"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func waitReady(t *testing.T, addr string) {
	t.Helper()
	var err error
	for range 50 {
		var resp *http.Response
		resp, err = http.Get("http://" + addr)
		if err == nil {
			_ = resp.Body.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()
		addr := freeAddr(t)
		srv := httpserver.New(httpserver.WithAddr(addr), httpserver.WithShutdownTimeout(100*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		}()
		waitReady(t, addr)

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			require.Fail(t, "run did not return")
		}
		require.NoError(t, srv.Shutdown(context.Background()))
	})

	t.Run("rejects second run", func(t *testing.T) {
		t.Parallel()
		addr := freeAddr(t)
		srv := httpserver.New(httpserver.WithAddr(addr))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Run(ctx, nil) }()
		waitReady(t, addr)

		err := srv.Run(ctx, nil)
		require.ErrorIs(t, err, httpserver.ErrStart)
		assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
	})

	t.Run("reports listen failure", func(t *testing.T) {
		t.Parallel()
		srv := httpserver.New(httpserver.WithAddr("invalid-address"))
		err := srv.Run(context.Background(), nil)
		require.ErrorIs(t, err, httpserver.ErrStart)
	})
}

func TestShutdownBeforeRun(t *testing.T) {
	t.Parallel()
	srv := httpserver.New()
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	probe := func(h http.Handler) (int, string) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		body, _ := io.ReadAll(rec.Body)
		return rec.Code, string(body)
	}

	code, body := probe(httpserver.HealthCheckHandler(nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ALIVE", body)

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("down") }

	code, body = probe(httpserver.HealthCheckHandler(nil, ok, ok))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "READY", body)

	code, body = probe(httpserver.HealthCheckHandler(nil, ok, fail))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "NOT_READY", body)
}
