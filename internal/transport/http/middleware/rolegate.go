package middleware

import (
	"net/http"

	"hrm/internal/domain/auth"
)

// RoleGate protects a page subtree. Anonymous visitors are sent to the
// login page; signed-in visitors of the wrong role are bounced to their own
// home page rather than shown an error.
func RoleGate(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if user.RoleName != role {
				http.Redirect(w, r, user.RoleName.HomePath(), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
