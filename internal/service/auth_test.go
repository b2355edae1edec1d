package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyToken(t *testing.T) {
	v := NewTokenVerifier("secret")

	token := signToken(t, "secret", jwt.MapClaims{
		"sub":   "user-1",
		"email": "camper@example.org",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	claims, err := v.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "camper@example.org", claims.Email)
}

func TestVerifyTokenRejects(t *testing.T) {
	v := NewTokenVerifier("secret")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong_secret", signToken(t, "other", jwt.MapClaims{"sub": "user-1"})},
		{"expired", signToken(t, "secret", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()})},
		{"no_subject", signToken(t, "secret", jwt.MapClaims{"email": "x@example.org"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyToken(tt.token)
			require.Error(t, err)
		})
	}
}
