//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"meetroom/internal/pkg/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the way the upstream identity provider does, so tests
// can exercise the verifier without a real provider.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, subject, name string) string {
	t.Helper()
	return h.sign(t, subject, name, time.Now().Add(time.Hour))
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, subject, name string) string {
	t.Helper()
	return h.sign(t, subject, name, time.Now().Add(-time.Minute))
}

func (h *JWTHelper) sign(t *testing.T, subject, name string, expiresAt time.Time) string {
	t.Helper()
	claims := gojwt.MapClaims{
		"sub":  subject,
		"name": name,
		"iat":  time.Now().Add(-2 * time.Minute).Unix(),
		"exp":  expiresAt.Unix(),
	}
	if h.cfg.Issuer != "" {
		claims["iss"] = h.cfg.Issuer
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return token
}
