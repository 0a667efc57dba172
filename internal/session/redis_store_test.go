package session

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStoreTest(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return NewRedisStore(rdb, "test", "ada"), mr
}

func TestRedisStore(t *testing.T) {
	t.Run("missing key loads empty pair", func(t *testing.T) {
		store, _ := newRedisStoreTest(t)
		tokens, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, Tokens{}, tokens)
	})

	t.Run("round trip", func(t *testing.T) {
		store, mr := newRedisStoreTest(t)
		require.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))

		assert.Equal(t, "test:session:ada", store.Key())
		assert.Equal(t, "a", mr.HGet(store.Key(), "access_token"))

		tokens, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, Tokens{Access: "a", Refresh: "r"}, tokens)
	})

	t.Run("absent token removed", func(t *testing.T) {
		store, mr := newRedisStoreTest(t)
		require.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))
		require.NoError(t, store.Save(Tokens{Access: "b"}))

		assert.Equal(t, "", mr.HGet(store.Key(), "refresh_token"))
		tokens, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, Tokens{Access: "b"}, tokens)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store, mr := newRedisStoreTest(t)
		require.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
		assert.False(t, mr.Exists(store.Key()))
	})

	t.Run("unavailable", func(t *testing.T) {
		store, mr := newRedisStoreTest(t)
		mr.Close()

		_, err := store.Load()
		assert.ErrorIs(t, err, ErrRedisUnavailable)

		sess := New(store)
		assert.False(t, sess.IsAuthenticated(), "unreachable store reads as signed out")
	})
}

func TestNewRedisStoreFromURL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store, err := NewRedisStoreFromURL("redis://"+mr.Addr()+"/0", "")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "coursekit:session:default", store.Key())
	require.NoError(t, store.Save(Tokens{Access: "a"}))
	assert.Equal(t, "a", mr.HGet(store.Key(), "access_token"))

	_, err = NewRedisStoreFromURL("not a url", "")
	assert.Error(t, err)
}
