// Package token verifies bearer credentials and guards routes with them.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leonsos/insightt-test/internal/feature/auth/domain/entity"
)

// ErrInvalidToken is returned for any credential that fails verification:
// malformed, expired, bad signature, or missing the required claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified content of a bearer credential: the identity the
// provider asserted plus the token's expiry (needed to bound revocations).
type Claims struct {
	Identity  entity.Identity
	ExpiresAt time.Time
}

// Verifier checks a bearer token and extracts the asserted identity.
// The identity provider itself is external; this interface is the single
// capability the service consumes from it.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// jwtVerifier validates HS256-signed tokens carrying sub and email claims.
type jwtVerifier struct {
	secret []byte
}

var _ Verifier = (*jwtVerifier)(nil)

// NewJWTVerifier creates a Verifier for tokens signed with the given secret.
func NewJWTVerifier(secret string) *jwtVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the identity it asserts.
func (v *jwtVerifier) Verify(_ context.Context, tokenStr string) (*Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; anything else is a forgery attempt.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidToken)
	}

	out := &Claims{Identity: entity.Identity{SubjectID: sub, Email: email}}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
