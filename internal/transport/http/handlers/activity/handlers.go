package activityhandler

import (
	"net/http"
	"strconv"

	"hrm/internal/domain/activity"
	"hrm/internal/platform/requestctx"
	"hrm/internal/transport/http/api"
)

type Handler struct {
	Activity *activity.Service
}

func NewHandler(svc *activity.Service) *Handler {
	return &Handler{Activity: svc}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.Activity.List(r.Context(), activity.Filter{
		Module: r.URL.Query().Get("module"),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list activity logs", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, requestctx.GetRequestID(r.Context()))
}
