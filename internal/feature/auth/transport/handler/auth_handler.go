// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/leonsos/insightt-test/internal/api"
	"github.com/leonsos/insightt-test/internal/feature/auth/transport/http/dto"
	"github.com/leonsos/insightt-test/internal/platform/token"
)

// LogoutUsecase defines the logout operation consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type LogoutUsecase interface {
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}

// AuthHandler handles the auth-adjacent endpoints. Token issuance lives
// entirely with the external identity provider; this handler only deals
// with tokens the provider already issued.
type AuthHandler struct {
	logout LogoutUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logout LogoutUsecase) *AuthHandler {
	return &AuthHandler{logout: logout}
}

// Profile handles GET /auth/profile, echoing the verified identity.
func (h *AuthHandler) Profile(c *gin.Context) {
	ident, ok := token.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{UID: ident.SubjectID, Email: ident.Email})
}

// Logout handles POST /auth/logout, revoking the presented token for the
// remainder of its lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	raw, expiresAt, ok := token.TokenFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	if err := h.logout.Logout(c.Request.Context(), raw, expiresAt); err != nil {
		log.Error().Err(err).Msg("logout failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}
