package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrm/internal/domain/auth"
)

func gateRequest(t *testing.T, gate func(http.Handler) http.Handler, user *auth.UserContext) *httptest.ResponseRecorder {
	t.Helper()
	called := false
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	if user != nil {
		req = req.WithContext(context.WithValue(req.Context(), ctxKeyUser, *user))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK && !called {
		t.Fatal("expected inner handler to run")
	}
	return rec
}

func TestRoleGateAnonymousRedirectsToLogin(t *testing.T) {
	rec := gateRequest(t, RoleGate(auth.RoleEmployee), nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected /login, got %q", loc)
	}
}

func TestRoleGateWrongRoleBouncedHome(t *testing.T) {
	cases := []struct {
		gate auth.Role
		user auth.Role
		want string
	}{
		{auth.RoleManager, auth.RoleEmployee, "/employee"},
		{auth.RoleEmployee, auth.RoleManager, "/manager"},
		{auth.RoleEmployee, auth.RoleHR, "/hr"},
		{auth.RoleHR, auth.RoleManager, "/manager"},
	}
	for _, tc := range cases {
		rec := gateRequest(t, RoleGate(tc.gate), &auth.UserContext{UserID: "u1", RoleName: tc.user})
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("gate %s user %s: expected redirect, got %d", tc.gate, tc.user, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != tc.want {
			t.Fatalf("gate %s user %s: expected %s, got %q", tc.gate, tc.user, tc.want, loc)
		}
	}
}

func TestRoleGateMatchingRolePasses(t *testing.T) {
	rec := gateRequest(t, RoleGate(auth.RoleHR), &auth.UserContext{UserID: "u1", RoleName: auth.RoleHR})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
