package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aiagenz/donate/internal/contextkeys"
	"github.com/aiagenz/donate/internal/domain"
	"github.com/aiagenz/donate/internal/handler"
)

// SessionCookie is the cookie the outer application stores its token in.
const SessionCookie = "jwt_access_token"

// TokenVerifier validates session tokens issued by the outer application.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.JWTClaims, error)
}

// OptionalAuth records the signed-in user in the context when a valid token is
// present. Requests without a token, or with an invalid one, continue as
// anonymous visitors.
func OptionalAuth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := verifier.VerifyToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RequireAuth rejects requests that OptionalAuth did not identify.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(contextkeys.UserID).(string)
		if !ok || userID == "" {
			handler.Error(w, domain.ErrUnauthorized("sign in required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withClaims(ctx context.Context, claims *domain.JWTClaims) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserID, claims.Sub)
	ctx = context.WithValue(ctx, contextkeys.UserEmail, claims.Email)
	return ctx
}

// bearerToken reads the token from the Authorization header, falling back to
// the session cookie.
func bearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
