package announcementshandler

import (
	"encoding/json"
	"net/http"

	"hrm/internal/domain/announcements"
	"hrm/internal/platform/requestctx"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
)

type Handler struct {
	Announcements *announcements.Service
}

func NewHandler(svc *announcements.Service) *Handler {
	return &Handler{Announcements: svc}
}

type createRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Urgency  string `json:"urgency"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	if payload.Title == "" || payload.Body == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "title and body are required", requestctx.GetRequestID(r.Context()))
		return
	}
	urgency, err := announcements.ParseUrgency(payload.Urgency)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_urgency", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}

	created, err := h.Announcements.Create(r.Context(), payload.Title, payload.Body, user.Name, payload.Category, urgency)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create announcement", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Announcements.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list announcements", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, requestctx.GetRequestID(r.Context()))
}
