package token

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/leonsos/insightt-test/internal/feature/auth/domain/entity"
	"github.com/leonsos/insightt-test/internal/platform/metrics"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextIdentity    = "identity"
	ContextToken       = "bearerToken"
	ContextTokenExpiry = "bearerTokenExpiry"
)

// RevocationChecker is the read side of the revocation list.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthRequired returns a Gin middleware that rejects requests without a
// valid, unrevoked bearer credential. Rejection happens before any
// storage access; valid requests get the resolved identity, the raw
// token, and its expiry placed on the request context.
func AuthRequired(verifier Verifier, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			metrics.AuthRejectedTotal.WithLabelValues("missing_token").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// Revocation wins over cryptographic validity.
		revoked, err := revocations.IsRevoked(c.Request.Context(), tokenStr)
		if err != nil {
			log.Error().Err(err).Msg("revocation check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if revoked {
			metrics.AuthRejectedTotal.WithLabelValues("revoked").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			metrics.AuthRejectedTotal.WithLabelValues("invalid").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextIdentity, claims.Identity)
		c.Set(ContextToken, tokenStr)
		c.Set(ContextTokenExpiry, claims.ExpiresAt)
		c.Next()
	}
}

// IdentityFromContext extracts the identity set by AuthRequired.
func IdentityFromContext(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return entity.Identity{}, false
	}
	ident, ok := v.(entity.Identity)
	return ident, ok
}

// TokenFromContext extracts the raw bearer token and its expiry.
func TokenFromContext(c *gin.Context) (string, time.Time, bool) {
	rawVal, ok := c.Get(ContextToken)
	if !ok {
		return "", time.Time{}, false
	}
	raw, ok := rawVal.(string)
	if !ok {
		return "", time.Time{}, false
	}
	var expiry time.Time
	if expVal, ok := c.Get(ContextTokenExpiry); ok {
		expiry, _ = expVal.(time.Time)
	}
	return raw, expiry, true
}
