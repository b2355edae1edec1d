package service

import (
	"fmt"

	"github.com/aiagenz/donate/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier checks session tokens issued by the outer application. The
// donation service never signs users in; it only needs to know whether the
// donor is signed in and who they are.
type TokenVerifier struct {
	jwtSecret string
}

// NewTokenVerifier creates a TokenVerifier for HS256 tokens signed with secret.
func NewTokenVerifier(jwtSecret string) *TokenVerifier {
	return &TokenVerifier{jwtSecret: jwtSecret}
}

// VerifyToken validates a JWT token and returns the claims.
func (v *TokenVerifier) VerifyToken(tokenStr string) (*domain.JWTClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.jwtSecret), nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized("invalid token claims")
	}

	sub := getClaimString(claims, "sub")
	if sub == "" {
		return nil, domain.ErrUnauthorized("token has no subject")
	}

	return &domain.JWTClaims{
		Sub:   sub,
		Email: getClaimString(claims, "email"),
		Role:  getClaimString(claims, "role"),
	}, nil
}

func getClaimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
