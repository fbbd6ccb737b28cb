package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/pkg/session"
)

type storeFactory func(t *testing.T) (session.Store, func(time.Duration))

func memoryStore(t *testing.T) (session.Store, func(time.Duration)) {
	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	return store, func(d time.Duration) { time.Sleep(d) }
}

func redisStore(t *testing.T) (session.Store, func(time.Duration)) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client), mr.FastForward
}

func TestStores(t *testing.T) {
	t.Parallel()

	stores := map[string]storeFactory{
		"memory": memoryStore,
		"redis":  redisStore,
	}

	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("create get delete", func(t *testing.T) {
				t.Parallel()
				store, _ := factory(t)
				ctx := context.Background()

				sess := session.NewSession("user-1", time.Hour)
				require.Len(t, sess.Token, 36)
				require.NoError(t, store.Create(ctx, sess))

				got, err := store.Get(ctx, sess.Token)
				require.NoError(t, err)
				assert.Equal(t, "user-1", got.UserID)
				assert.Equal(t, sess.Token, got.Token)
				assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, 2*time.Second)

				require.NoError(t, store.Delete(ctx, sess.Token))

				_, err = store.Get(ctx, sess.Token)
				assert.ErrorIs(t, err, session.ErrSessionNotFound)
				assert.ErrorIs(t, store.Delete(ctx, sess.Token), session.ErrSessionNotFound)
			})

			t.Run("unknown token", func(t *testing.T) {
				t.Parallel()
				store, _ := factory(t)

				_, err := store.Get(context.Background(), "missing")
				assert.ErrorIs(t, err, session.ErrSessionNotFound)

				_, err = store.Get(context.Background(), "")
				assert.ErrorIs(t, err, session.ErrSessionNotFound)
			})

			t.Run("invalid session", func(t *testing.T) {
				t.Parallel()
				store, _ := factory(t)
				ctx := context.Background()

				assert.ErrorIs(t, store.Create(ctx, nil), session.ErrInvalidSession)
				assert.ErrorIs(t, store.Create(ctx, session.NewSession("", time.Hour)), session.ErrInvalidSession)
			})

			t.Run("expires", func(t *testing.T) {
				t.Parallel()
				store, advance := factory(t)
				ctx := context.Background()

				sess := session.NewSession("user-2", 50*time.Millisecond)
				require.NoError(t, store.Create(ctx, sess))

				advance(100 * time.Millisecond)

				_, err := store.Get(ctx, sess.Token)
				assert.ErrorIs(t, err, session.ErrSessionNotFound)
			})

			t.Run("many tokens per user", func(t *testing.T) {
				t.Parallel()
				store, _ := factory(t)
				ctx := context.Background()

				a := session.NewSession("user-3", time.Hour)
				b := session.NewSession("user-3", time.Hour)
				require.NotEqual(t, a.Token, b.Token)
				require.NoError(t, store.Create(ctx, a))
				require.NoError(t, store.Create(ctx, b))

				require.NoError(t, store.Delete(ctx, a.Token))

				got, err := store.Get(ctx, b.Token)
				require.NoError(t, err)
				assert.Equal(t, "user-3", got.UserID)
			})
		})
	}
}

func TestRedisStoreKeyLayout(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := session.NewRedisStore(client)
	sess := session.NewSession("64b7f0c2a1b2c3d4e5f60718", 24*time.Hour)
	require.NoError(t, store.Create(context.Background(), sess))

	val, err := mr.Get("auth_" + sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", val)
	assert.InDelta(t, float64(24*time.Hour), float64(mr.TTL("auth_"+sess.Token)), float64(time.Second))

	custom := session.NewRedisStore(client, session.WithKeyPrefix("s:"))
	other := session.NewSession("u", time.Minute)
	require.NoError(t, custom.Create(context.Background(), other))
	assert.True(t, mr.Exists("s:"+other.Token))
}

func TestRedisStoreFailure(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	store := session.NewRedisStore(client)
	_, err := store.Get(context.Background(), "token")
	assert.ErrorIs(t, err, session.ErrStoreFailure)
	assert.ErrorIs(t, store.Create(context.Background(), session.NewSession("u", time.Minute)), session.ErrStoreFailure)
}

func TestMemoryStoreCleanup(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(10 * time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Create(context.Background(), session.NewSession("u", 5*time.Millisecond)))
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHeaderTransport(t *testing.T) {
	t.Parallel()

	t.Run("raw token", func(t *testing.T) {
		t.Parallel()
		tr := session.NewHeaderTransport("")
		r := httptestRequest(map[string]string{"X-Token": "abc"})
		token, err := tr.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		tr := session.NewHeaderTransport(session.DefaultHeader)
		_, err := tr.GetToken(httptestRequest(nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		tr := session.NewHeaderTransport("Authorization", session.WithHeaderPrefix("Bearer "))
		token, err := tr.GetToken(httptestRequest(map[string]string{"Authorization": "Bearer xyz"}))
		require.NoError(t, err)
		assert.Equal(t, "xyz", token)

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "xyz", time.Hour))
		assert.Equal(t, "Bearer xyz", w.Header().Get("Authorization"))
		require.NoError(t, tr.ClearToken(w))
		assert.Empty(t, w.Header().Get("Authorization"))
	})
}

func httptestRequest(headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}
