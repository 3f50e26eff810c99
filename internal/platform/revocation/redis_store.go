// Package revocation provides the token revocation list implementations.
//
// The list is an injected capability rather than process state so that a
// multi-instance deployment shares one view of revoked tokens. Entries
// are only ever added; the Redis implementation lets them expire with the
// token itself.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leonsos/insightt-test/internal/feature/auth/usecase"
)

// RedisStore implements usecase.RevocationStore on Redis TTL keys.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ usecase.RevocationStore = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore. An empty prefix defaults to "revoked".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "revoked"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// key hashes the token so raw credentials never appear in Redis.
func (s *RedisStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%s:%s", s.prefix, hex.EncodeToString(sum[:]))
}

// Revoke marks the token revoked until its natural expiry.
func (s *RedisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token is on the revocation list.
func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}
