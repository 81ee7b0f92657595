package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrm/internal/domain/auth"
	"hrm/internal/transport/http/api"
)

func TestRequireRolesUnauthenticated(t *testing.T) {
	handler := RequireRoles(auth.RoleHR)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hr/activity-logs", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRolesForbiddenNamesRoles(t *testing.T) {
	handler := RequireRoles(auth.RoleHR, auth.RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leave/1", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxKeyUser, auth.UserContext{UserID: "u1", RoleName: auth.RoleEmployee}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var env api.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error == nil || !strings.Contains(env.Error.Message, "hr") || !strings.Contains(env.Error.Message, "manager") {
		t.Fatalf("expected message naming allowed roles, got %+v", env.Error)
	}
}

func TestRequireRolesAllowed(t *testing.T) {
	handler := RequireRoles(auth.RoleEmployee)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/leave", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxKeyUser, auth.UserContext{UserID: "u1", RoleName: auth.RoleEmployee}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
