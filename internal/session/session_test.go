package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestFileStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "session")

		store, err := NewFileStore(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
		assert.Equal(t, filepath.Join(dir, "session.json"), store.Path())
	})

	t.Run("missing file loads as empty pair", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		tokens, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, Tokens{}, tokens)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		tokens, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "a", tokens.Access)
		assert.Equal(t, "r", tokens.Refresh)
	})

	t.Run("persists under two string keys", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))

		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.JSONEq(t, `{"access_token":"a","refresh_token":"r"}`, string(data))
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))

		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())

		_, err = os.Stat(store.Path())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("corrupt file returns error", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0600))

		_, err = store.Load()
		assert.ErrorIs(t, err, ErrInvalidSessionFile)
	})
}

func TestSession_IsAuthenticated(t *testing.T) {
	sess := New(NewMemoryStore())
	assert.False(t, sess.IsAuthenticated())

	require.NoError(t, sess.SetTokens("access", "refresh"))
	assert.True(t, sess.IsAuthenticated())

	require.NoError(t, sess.ClearTokens())
	assert.False(t, sess.IsAuthenticated())
	assert.Equal(t, Tokens{}, sess.Tokens())
}

func TestSession_CorruptStoreIsSignedOut(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("garbage"), 0600))

	sess := New(store)
	assert.False(t, sess.IsAuthenticated())
}

func TestSession_CurrentClaims(t *testing.T) {
	t.Run("decodes payload", func(t *testing.T) {
		sess := New(NewMemoryStore())
		token := signTestToken(t, jwt.MapClaims{
			"username": "ada",
			"role":     "lecturer",
			"user_id":  7,
		})
		require.NoError(t, sess.SetTokens(token, "refresh"))

		claims, ok := sess.CurrentClaims()
		require.True(t, ok)
		assert.Equal(t, "ada", claims.Username)
		assert.Equal(t, "lecturer", claims.Role)
		assert.Equal(t, "7", claims.UserID.String())

		user, ok := sess.CurrentUser()
		require.True(t, ok)
		assert.True(t, user.IsLecturer())
		assert.Equal(t, "7", user.UserID)
	})

	t.Run("string user id", func(t *testing.T) {
		claims, ok := DecodeClaims(signTestToken(t, jwt.MapClaims{"username": "bo", "user_id": "12"}))
		require.True(t, ok)
		assert.Equal(t, "12", claims.User().UserID)
	})

	t.Run("missing role defaults to student", func(t *testing.T) {
		claims, ok := DecodeClaims(signTestToken(t, jwt.MapClaims{"username": "bo"}))
		require.True(t, ok)
		assert.Equal(t, RoleStudent, claims.User().Role)
	})

	t.Run("absent without access token", func(t *testing.T) {
		sess := New(NewMemoryStore())
		claims, ok := sess.CurrentClaims()
		assert.False(t, ok)
		assert.Nil(t, claims)
	})

	t.Run("absent on undecodable token", func(t *testing.T) {
		sess := New(NewMemoryStore())
		require.NoError(t, sess.SetTokens("not-a-jwt", "refresh"))

		_, ok := sess.CurrentClaims()
		assert.False(t, ok)
		assert.True(t, sess.IsAuthenticated())
	})
}
