package attendancehandler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hrm/internal/domain/attendance"
	"hrm/internal/domain/auth"
	"hrm/internal/platform/requestctx"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
)

type Handler struct {
	Attendance *attendance.Service

	// CronAPIKey lets an external scheduler trigger the auto clock-out
	// batch without a session. Empty disables the key path entirely.
	CronAPIKey string
}

func NewHandler(svc *attendance.Service, cronAPIKey string) *Handler {
	return &Handler{Attendance: svc, CronAPIKey: cronAPIKey}
}

func (h *Handler) HandleClockIn(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	entry, err := h.Attendance.ClockIn(r.Context(), user.UserID, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			api.Fail(w, http.StatusConflict, "already_clocked_in", "already clocked in today", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "clock_in_failed", "failed to clock in", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Created(w, entry, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleClockOut(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	entry, err := h.Attendance.ClockOut(r.Context(), user.UserID, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrNotClockedIn) {
			api.Fail(w, http.StatusConflict, "not_clocked_in", "no open attendance entry today", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "clock_out_failed", "failed to clock out", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entry, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 31
	}
	entries, err := h.Attendance.ListForEmployee(r.Context(), user.UserID, limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_failed", "failed to list attendance", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, requestctx.GetRequestID(r.Context()))
}

// HandleAutoClockOut runs the end-of-day batch. Callable by HR, or by an
// external scheduler presenting the configured API key.
func (h *Handler) HandleAutoClockOut(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	results, err := h.Attendance.AutoClockOut(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "batch_failed", "auto clock-out batch failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"closed": len(results), "entries": results}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.CronAPIKey != "" && r.Header.Get("X-Api-Key") == h.CronAPIKey {
		return true
	}
	user, ok := middleware.GetUser(r.Context())
	return ok && user.RoleName == auth.RoleHR
}
