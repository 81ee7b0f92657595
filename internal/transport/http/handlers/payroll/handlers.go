package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"hrm/internal/domain/auth"
	"hrm/internal/domain/payroll"
	"hrm/internal/platform/requestctx"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
)

type Handler struct {
	Payroll  *payroll.Service
	Validate *validator.Validate
}

func NewHandler(svc *payroll.Service) *Handler {
	return &Handler{Payroll: svc, Validate: validator.New()}
}

type createRequest struct {
	EmployeeID           string  `json:"employeeId" validate:"required"`
	BaseSalary           float64 `json:"baseSalary" validate:"gte=0"`
	Bonus                float64 `json:"bonus" validate:"gte=0"`
	BonusDescription     string  `json:"bonusDescription"`
	Deduction            float64 `json:"deduction" validate:"gte=0"`
	DeductionDescription string  `json:"deductionDescription"`
	Month                string  `json:"month" validate:"required"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_failed", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}

	rec, err := h.Payroll.Create(r.Context(), payload.EmployeeID, payload.BaseSalary, payload.Bonus, payload.Deduction,
		payload.BonusDescription, payload.DeductionDescription, payload.Month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create payroll record", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Created(w, rec, requestctx.GetRequestID(r.Context()))
}

// HandleList serves the full ledger with filters for HR and only the
// caller's own records for employees.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	filter := payroll.Filter{
		Month:      r.URL.Query().Get("month"),
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
	}
	if user.RoleName != auth.RoleHR {
		filter = payroll.Filter{EmployeeID: user.UserID, Month: filter.Month}
	}

	records, err := h.Payroll.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list payroll records", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch payroll.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	rec, err := h.Payroll.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "update_failed", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, requestctx.GetRequestID(r.Context()))
}

// HandlePayslip renders the record as a PDF. Employees can only fetch their
// own payslips; HR can fetch anyone's.
func (h *Handler) HandlePayslip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	rec, err := h.Payroll.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to load payroll record", requestctx.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && rec.EmployeeID != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your payslip", requestctx.GetRequestID(r.Context()))
		return
	}

	pdf, err := payroll.Payslip(rec)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", requestctx.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip-`+rec.Month+`.pdf"`)
	_, _ = w.Write(pdf)
}
