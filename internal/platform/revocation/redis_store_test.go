package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedis starts a miniredis instance and returns a client bound to it.
func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func hashedKey(prefix, token string) string {
	sum := sha256.Sum256([]byte(token))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

func TestRedisStore_Revoke(t *testing.T) {
	t.Run("revoked token is reported revoked", func(t *testing.T) {
		_, client := setupRedis(t)
		store := NewRedisStore(client, "")

		err := store.Revoke(context.Background(), "token-a", time.Hour)
		require.NoError(t, err)

		revoked, err := store.IsRevoked(context.Background(), "token-a")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("raw token never appears as a key", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := NewRedisStore(client, "")

		require.NoError(t, store.Revoke(context.Background(), "token-a", time.Hour))

		assert.False(t, mr.Exists("revoked:token-a"), "key must not contain the raw token")
		assert.True(t, mr.Exists(hashedKey("revoked", "token-a")), "key is the token hash")
	})

	t.Run("entry expires with the token", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := NewRedisStore(client, "")

		require.NoError(t, store.Revoke(context.Background(), "token-a", time.Minute))
		mr.FastForward(2 * time.Minute)

		revoked, err := store.IsRevoked(context.Background(), "token-a")
		require.NoError(t, err)
		assert.False(t, revoked, "entry should lapse with the token's lifetime")
	})

	t.Run("non-positive ttl is a no-op", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := NewRedisStore(client, "")

		require.NoError(t, store.Revoke(context.Background(), "token-a", 0))
		require.NoError(t, store.Revoke(context.Background(), "token-b", -time.Minute))

		assert.Empty(t, mr.Keys(), "expired tokens need no entry")
	})

	t.Run("custom prefix is honoured", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := NewRedisStore(client, "blacklist")

		require.NoError(t, store.Revoke(context.Background(), "token-a", time.Hour))

		assert.True(t, mr.Exists(hashedKey("blacklist", "token-a")))
	})
}

func TestRedisStore_IsRevoked(t *testing.T) {
	t.Run("unknown token is not revoked", func(t *testing.T) {
		_, client := setupRedis(t)
		store := NewRedisStore(client, "")

		revoked, err := store.IsRevoked(context.Background(), "never-seen")

		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("redis failure surfaces as an error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := NewRedisStore(client, "")
		mock.ExpectExists(hashedKey("revoked", "token-a")).SetErr(errors.New("connection refused"))

		_, err := store.IsRevoked(context.Background(), "token-a")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
