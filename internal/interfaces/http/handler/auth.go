package handler

import (
	"github.com/eezystore/backend/internal/infrastructure/auth"
	"github.com/eezystore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles session endpoints for an already issued token.
// Token issuance lives with the identity provider; this service only
// validates and revokes.
type AuthHandler struct {
	BaseHandler
	tokenBlacklist auth.TokenBlacklist
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tokenBlacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{tokenBlacklist: tokenBlacklist}
}

// MeResponse describes the authenticated caller
type MeResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Me returns the identity carried by the presented token
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Success(c, MeResponse{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     string(claims.Role),
	})
}

// Logout revokes the presented token for the remainder of its lifetime
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if h.tokenBlacklist != nil && claims.ID != "" {
		ttl := claims.GetRemainingTTL()
		if ttl > 0 {
			if err := h.tokenBlacklist.AddToBlacklist(c.Request.Context(), claims.ID, ttl); err != nil {
				h.InternalError(c, "Failed to revoke token")
				return
			}
		}
	}

	h.Success(c, gin.H{"message": "Logged out"})
}
