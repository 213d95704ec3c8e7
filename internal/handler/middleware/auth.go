package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"belizevibes-booking/internal/handler/httperr"
	"belizevibes-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenVerifier is satisfied by *jwt.Verifier.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

const (
	ctxUserIDKey    = "user_id"
	ctxUserRoleKey  = "user_role"
	ctxUserEmailKey = "user_email"
	ctxClaimsKey    = "jwt_claims"
)

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Access token required", nil)
			return
		}

		claims, err := m.verifier.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present. Guests
// and bad tokens pass through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.verifier.ValidateToken(token)
		if err != nil {
			slog.Debug("Ignoring invalid token on optional-auth route", "error", err.Error())
			c.Next()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	// ValidateToken already rejected tokens without a UUID subject.
	userID, _ := claims.UserID()

	c.Set(ctxUserIDKey, userID)
	c.Set(ctxUserRoleKey, claims.Role)
	c.Set(ctxUserEmailKey, claims.Email)
	c.Set(ctxClaimsKey, map[string]any{
		"user_id": userID.String(),
		"role":    claims.Role,
	})
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetOptionalUserID is nil for guests.
func GetOptionalUserID(c *gin.Context) *uuid.UUID {
	id, ok := GetUserID(c)
	if !ok {
		return nil
	}
	return &id
}

func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	r, ok := role.(string)
	return r, ok
}
