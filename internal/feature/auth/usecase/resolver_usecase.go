package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/leonsos/insightt-test/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists when a
	// user with the same email is already stored.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user matching the given email, or
	// ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// identityResolver maps verified external identities to internal user
// records with find-or-create semantics.
type identityResolver struct {
	users UserRepository
}

// NewIdentityResolver creates a new identityResolver.
func NewIdentityResolver(users UserRepository) *identityResolver {
	return &identityResolver{users: users}
}

// Resolve returns the user record for the given identity, creating one on
// first sight. The lookup key is the email, not the provider's subject id:
// two identities sharing an email resolve to the same user. Repeated calls
// with the same email always return the same user id.
func (r *identityResolver) Resolve(ctx context.Context, ident entity.Identity) (*entity.User, error) {
	user, err := r.users.FindByEmail(ctx, ident.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Password stays empty: the column exists only to satisfy the legacy
	// schema, authentication never reads it.
	user = &entity.User{Email: ident.Email, Password: ""}
	if err := r.users.Create(ctx, user); err != nil {
		// A concurrent request may have created the record between the
		// lookup and the insert. Re-read instead of failing.
		if errors.Is(err, ErrEmailAlreadyExists) {
			return r.users.FindByEmail(ctx, ident.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
