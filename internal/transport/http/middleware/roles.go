package middleware

import (
	"net/http"
	"strings"

	"hrm/internal/domain/auth"
	"hrm/internal/transport/http/api"
)

// RequireRoles guards an API subtree. Unauthenticated callers get 401,
// authenticated callers outside the allowed set get 403 naming the roles
// the endpoint accepts.
func RequireRoles(roles ...auth.Role) func(http.Handler) http.Handler {
	allowed := make(map[auth.Role]struct{}, len(roles))
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
		names = append(names, string(role))
	}
	message := "requires role: " + strings.Join(names, " or ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if _, ok := allowed[user.RoleName]; !ok {
				api.Fail(w, http.StatusForbidden, "forbidden", message, GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
