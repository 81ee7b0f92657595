package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrm/internal/domain/auth"
	"hrm/internal/domain/core"
	"hrm/internal/domain/leave"
	"hrm/internal/platform/requestctx"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
	"hrm/internal/transport/http/shared"
)

type Handler struct {
	Leave *leave.Service
	Store *core.Store
}

func NewHandler(svc *leave.Service, store *core.Store) *Handler {
	return &Handler{Leave: svc, Store: store}
}

type createRequest struct {
	Category  string `json:"category"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
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
	start, err := shared.ParseDate(payload.StartDate)
	if err != nil || start.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid start date", requestctx.GetRequestID(r.Context()))
		return
	}
	end, err := shared.ParseDate(payload.EndDate)
	if err != nil || end.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid end date", requestctx.GetRequestID(r.Context()))
		return
	}

	created, err := h.Leave.Create(r.Context(), user.UserID, payload.Category, payload.Reason, start, end)
	if err != nil {
		if errors.Is(err, leave.ErrInvalidRange) {
			api.Fail(w, http.StatusBadRequest, "invalid_range", "end date before start date", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create leave request", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, requestctx.GetRequestID(r.Context()))
}

// HandleList returns the caller's own requests for employees, the team's
// requests for managers, and everything for HR.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var (
		requests []leave.Request
		err      error
	)
	switch user.RoleName {
	case auth.RoleEmployee:
		requests, err = h.Leave.ListForEmployee(r.Context(), user.UserID)
	case auth.RoleManager:
		requests, err = h.Leave.ListForManager(r.Context(), user.UserID)
	case auth.RoleHR:
		requests, err = h.Leave.ListAll(r.Context())
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list leave requests", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	request, err := h.Leave.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failLeave(w, r, err)
		return
	}

	switch user.RoleName {
	case auth.RoleHR:
	case auth.RoleEmployee:
		if request.EmployeeID != user.UserID {
			api.Fail(w, http.StatusForbidden, "forbidden", "not your leave request", requestctx.GetRequestID(r.Context()))
			return
		}
	case auth.RoleManager:
		inTeam, err := h.Store.TeamContains(r.Context(), user.UserID, request.EmployeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load leave request", requestctx.GetRequestID(r.Context()))
			return
		}
		if !inTeam {
			api.Fail(w, http.StatusForbidden, "forbidden", "employee is not on your team", requestctx.GetRequestID(r.Context()))
			return
		}
	}
	api.Success(w, request, requestctx.GetRequestID(r.Context()))
}

type decisionRequest struct {
	Status string `json:"status"`
}

// HandleResolve moves a pending request to Approved or Rejected. Managers
// may only decide for their own team; HR may decide for anyone.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	if !user.RoleName.CanApproveLeave() {
		api.Fail(w, http.StatusForbidden, "forbidden", "requires role: hr or manager", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	h.resolve(w, r, chi.URLParam(r, "id"), payload.Status, user)
}

type managerDecisionRequest struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
}

// HandleManagerResolve is the manager dashboard's decision endpoint; it
// carries the request id in the body instead of the path.
func (h *Handler) HandleManagerResolve(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload managerDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.RequestID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	h.resolve(w, r, payload.RequestID, payload.Status, user)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, id, status string, user auth.UserContext) {
	decision, err := leave.ParseDecision(status)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_decision", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}

	if user.RoleName == auth.RoleManager {
		request, err := h.Leave.Get(r.Context(), id)
		if err != nil {
			h.failLeave(w, r, err)
			return
		}
		inTeam, err := h.Store.TeamContains(r.Context(), user.UserID, request.EmployeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "resolve_failed", "failed to resolve leave request", requestctx.GetRequestID(r.Context()))
			return
		}
		if !inTeam {
			api.Fail(w, http.StatusForbidden, "forbidden", "employee is not on your team", requestctx.GetRequestID(r.Context()))
			return
		}
	}

	resolved, err := h.Leave.Resolve(r.Context(), id, decision, user.UserID, user.RoleName)
	if err != nil {
		h.failLeave(w, r, err)
		return
	}
	api.Success(w, resolved, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := h.Leave.Delete(r.Context(), chi.URLParam(r, "id"), user.UserID); err != nil {
		h.failLeave(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

// HandleTeamRequests lists every request from the manager's team, newest
// first.
func (h *Handler) HandleTeamRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	requests, err := h.Leave.ListForManager(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list leave requests", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) failLeave(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
	case errors.Is(err, leave.ErrAlreadyResolved):
		api.Fail(w, http.StatusNotFound, "not_found", "no pending leave request", reqID)
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "not your leave request", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_error", "leave operation failed", reqID)
	}
}
