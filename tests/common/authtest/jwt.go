//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"belizevibes-booking/internal/pkg/config"
	pkgjwt "belizevibes-booking/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity provider does, signed with the
// shared secret from cfg.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	return h.sign(t, h.claims(userID.String(), email, time.Hour))
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.sign(t, h.claims(userID.String(), "traveler@example.com", -time.Minute))
}

// CreateForeignToken is well formed but signed with another secret.
func (h *JWTHelper) CreateForeignToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, h.claims(userID.String(), "traveler@example.com", time.Hour)).
		SignedString([]byte("not-" + h.cfg.Secret))
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) claims(subject, email string, ttl time.Duration) *pkgjwt.Claims {
	now := time.Now()
	c := &pkgjwt.Claims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    h.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if h.cfg.Audience != "" {
		c.Audience = jwt.ClaimStrings{h.cfg.Audience}
	}
	return c
}

func (h *JWTHelper) sign(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return token
}
