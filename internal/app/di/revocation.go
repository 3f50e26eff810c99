// Package di wires implementation choices that depend on the environment.
package di

import (
	"github.com/redis/go-redis/v9"

	"github.com/leonsos/insightt-test/internal/feature/auth/usecase"
	"github.com/leonsos/insightt-test/internal/platform/revocation"
)

// NewRevocationStore creates a RevocationStore implementation.
// With Redis available the list is shared across instances and entries
// expire with their tokens. Without it, a process-local store keeps a
// single-instance deployment working.
func NewRevocationStore(rdb *redis.Client) usecase.RevocationStore {
	if rdb != nil {
		return revocation.NewRedisStore(rdb, "revoked")
	}
	return revocation.NewMemoryStore()
}
