package usecase

import (
	"context"
	"fmt"
	"time"
)

// RevocationStore abstracts the shared revocation list consulted on every
// authenticated request. Entries only ever get added; expiry is the
// store's concern (the Redis implementation keys entries with a TTL).
type RevocationStore interface {
	// Revoke marks a token string as revoked for the given duration.
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked reports whether a token string has been revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// logoutUsecase invalidates bearer tokens ahead of their natural expiry.
type logoutUsecase struct {
	revocations RevocationStore
}

// NewLogoutUsecase creates a new logoutUsecase.
func NewLogoutUsecase(revocations RevocationStore) *logoutUsecase {
	return &logoutUsecase{revocations: revocations}
}

// Logout revokes the presented token for the remainder of its lifetime.
// A token that is already past its expiry needs no revocation entry.
func (u *logoutUsecase) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := u.revocations.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
