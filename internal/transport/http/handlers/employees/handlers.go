package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrm/internal/domain/core"
	"hrm/internal/platform/requestctx"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
)

type Handler struct {
	Store *core.Store
}

func NewHandler(store *core.Store) *Handler {
	return &Handler{Store: store}
}

// HandleList serves the employee directory with optional department and
// name/email search filters. An id parameter narrows it to a single record.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		h.respondSingle(w, r, id)
		return
	}
	employees, err := h.Store.ListEmployees(r.Context(), r.URL.Query().Get("department"), r.URL.Query().Get("search"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.respondSingle(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) respondSingle(w http.ResponseWriter, r *http.Request, id string) {
	employee, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load employee", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, requestctx.GetRequestID(r.Context()))
}

type statusRequest struct {
	EmployeeID string `json:"employeeId"`
	Status     string `json:"status"`
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	status, err := core.ParseEmployeeStatus(payload.Status)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_status", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.UpdateEmployeeStatus(r.Context(), payload.EmployeeID, status); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update status", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"employeeId": payload.EmployeeID, "status": string(status)}, requestctx.GetRequestID(r.Context()))
}

// HandleTeam lists the members of the calling manager's team, in the order
// they were assigned.
func (h *Handler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	members, err := h.Store.TeamMembers(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_failed", "failed to load team", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, members, requestctx.GetRequestID(r.Context()))
}

type teamMemberRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) HandleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	var payload teamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId required", requestctx.GetRequestID(r.Context()))
		return
	}
	if _, err := h.Store.GetEmployee(r.Context(), payload.EmployeeID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "team_failed", "failed to add team member", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.AddTeamMember(r.Context(), user.UserID, payload.EmployeeID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_failed", "failed to add team member", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"employeeId": payload.EmployeeID}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleRemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.RemoveTeamMember(r.Context(), user.UserID, chi.URLParam(r, "employeeId")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_failed", "failed to remove team member", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "removed"}, requestctx.GetRequestID(r.Context()))
}
