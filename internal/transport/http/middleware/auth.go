package middleware

import (
	"context"
	"net/http"
	"strings"

	"hrm/internal/domain/auth"
)

// TokenCookie carries the signed JWT. RoleCookie mirrors the role claim for
// the frontend and is never trusted server-side.
const (
	TokenCookie = "token"
	RoleCookie  = "role"
)

// Auth extracts the caller from the token cookie, falling back to a bearer
// header. Requests without valid credentials pass through unauthenticated;
// route guards decide whether that is acceptable.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, auth.UserContext{
				UserID:     claims.UserID,
				Email:      claims.Email,
				Name:       claims.Name,
				RoleName:   claims.RoleName,
				Department: claims.Department,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
