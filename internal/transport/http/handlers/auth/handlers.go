package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"hrm/internal/domain/auth"
	"hrm/internal/domain/core"
	"hrm/internal/platform/requestctx"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
)

type Handler struct {
	Resolver auth.Resolver
	Store    *core.Store
	Secret   string
	TokenTTL time.Duration
	Secure   bool
	Validate *validator.Validate
}

func NewHandler(resolver auth.Resolver, store *core.Store, secret string, ttl time.Duration, secure bool) *Handler {
	return &Handler{
		Resolver: resolver,
		Store:    store,
		Secret:   secret,
		TokenTTL: ttl,
		Secure:   secure,
		Validate: validator.New(),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "missing_fields", "email and password are required", requestctx.GetRequestID(r.Context()))
		return
	}

	// Unknown email and wrong password produce the same answer so the
	// endpoint cannot be used to enumerate accounts.
	identity, err := h.Resolver.Resolve(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, auth.ErrNoIdentity) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(identity.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:     identity.ID,
		Email:      identity.Email,
		Name:       identity.Name,
		RoleName:   identity.RoleName,
		Department: identity.Department,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	// Both cookies are set together; a half-set session would confuse the
	// role gate on the page tree.
	h.setSessionCookies(w, token, identity.RoleName)

	api.Success(w, map[string]any{
		"token": token,
		"role":  identity.RoleName,
		"user": map[string]string{
			"id":    identity.ID,
			"email": identity.Email,
			"name":  identity.Name,
		},
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	role, err := auth.ParseRegisterRole(chi.URLParam(r, "role"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "unknown_role", "unknown registration role", requestctx.GetRequestID(r.Context()))
		return
	}

	switch role {
	case auth.RoleHR:
		h.registerAdmin(w, r)
	case auth.RoleManager:
		h.registerManager(w, r)
	case auth.RoleEmployee:
		h.registerEmployee(w, r)
	}
}

func (h *Handler) registerAdmin(w http.ResponseWriter, r *http.Request) {
	var payload core.RegisterAdmin
	if !h.decodeValid(w, r, &payload) {
		return
	}
	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to store credentials", requestctx.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.CreateAdmin(r.Context(), payload, hash)
	if err != nil {
		h.failCreate(w, r, err)
		return
	}
	api.Created(w, map[string]string{"id": id, "role": string(auth.RoleHR)}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) registerManager(w http.ResponseWriter, r *http.Request) {
	var payload core.RegisterManager
	if !h.decodeValid(w, r, &payload) {
		return
	}
	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to store credentials", requestctx.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.CreateManager(r.Context(), payload, hash)
	if err != nil {
		h.failCreate(w, r, err)
		return
	}
	api.Created(w, map[string]string{"id": id, "role": string(auth.RoleManager)}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) registerEmployee(w http.ResponseWriter, r *http.Request) {
	var payload core.RegisterEmployee
	if !h.decodeValid(w, r, &payload) {
		return
	}
	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to store credentials", requestctx.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.CreateEmployee(r.Context(), payload, hash)
	if err != nil {
		h.failCreate(w, r, err)
		return
	}
	api.Created(w, map[string]string{"id": id, "role": string(auth.RoleEmployee)}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookies(w)
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return false
	}
	if err := h.Validate.Struct(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_failed", err.Error(), requestctx.GetRequestID(r.Context()))
		return false
	}
	return true
}

func (h *Handler) failCreate(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrEmailTaken) {
		api.Fail(w, http.StatusBadRequest, "email_taken", "email already registered", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to create account", requestctx.GetRequestID(r.Context()))
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, token string, role auth.Role) {
	expires := time.Now().Add(h.TokenTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RoleCookie,
		Value:    string(role),
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.TokenCookie, middleware.RoleCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
