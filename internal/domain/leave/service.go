package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrm/internal/domain/auth"
)

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Create(ctx context.Context, employeeID, category, reason string, start, end time.Time) (Request, error) {
	if err := ValidateRange(start, end); err != nil {
		return Request{}, err
	}
	req := Request{
		EmployeeID: employeeID,
		Category:   category,
		StartDate:  start,
		EndDate:    end,
		Reason:     reason,
		Status:     StatusPending,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, category, start_date, end_date, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at
  `, employeeID, category, start, end, reason, StatusPending).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	var req Request
	err := s.DB.QueryRow(ctx, `
    SELECT lr.id, lr.employee_id, e.name, lr.category, lr.start_date, lr.end_date, lr.reason, lr.status,
           COALESCE(lr.approved_by::text, ''), COALESCE(lr.approver_role, ''), lr.created_at, lr.approved_at
    FROM leave_requests lr
    JOIN employees e ON e.id = lr.employee_id
    WHERE lr.id = $1
  `, id).Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &req.Category, &req.StartDate, &req.EndDate,
		&req.Reason, &req.Status, &req.ApprovedBy, &req.ApproverRole, &req.CreatedAt, &req.ApprovedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

// Resolve moves a pending request to a terminal state. Status, approver
// identity and approval timestamp change in one statement guarded on the
// Pending state, so a request can never be resolved twice or end up with a
// status but no approver.
func (s *Service) Resolve(ctx context.Context, id string, decision Status, approverID string, approverRole auth.Role) (Request, error) {
	if err := CanTransition(StatusPending, decision); err != nil {
		return Request{}, err
	}

	var req Request
	err := s.DB.QueryRow(ctx, `
    UPDATE leave_requests
    SET status = $1, approved_by = $2, approver_role = $3, approved_at = now()
    WHERE id = $4 AND status = $5
    RETURNING id, employee_id, category, start_date, end_date, reason, status, approved_by::text, approver_role, created_at, approved_at
  `, decision, approverID, string(approverRole), id, StatusPending).Scan(
		&req.ID, &req.EmployeeID, &req.Category, &req.StartDate, &req.EndDate, &req.Reason,
		&req.Status, &req.ApprovedBy, &req.ApproverRole, &req.CreatedAt, &req.ApprovedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the request is gone or it already left Pending.
		if _, getErr := s.Get(ctx, id); getErr == nil {
			return Request{}, ErrAlreadyResolved
		}
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

// Delete removes a request only while Pending and only for its owner.
func (s *Service) Delete(ctx context.Context, id, ownerEmployeeID string) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM leave_requests
    WHERE id = $1 AND employee_id = $2 AND status = $3
  `, id, ownerEmployeeID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		req, getErr := s.Get(ctx, id)
		if getErr != nil {
			return ErrNotFound
		}
		return CanDelete(req, ownerEmployeeID)
	}
	return nil
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	return s.list(ctx, `
    SELECT lr.id, lr.employee_id, e.name, lr.category, lr.start_date, lr.end_date, lr.reason, lr.status,
           COALESCE(lr.approved_by::text, ''), COALESCE(lr.approver_role, ''), lr.created_at, lr.approved_at
    FROM leave_requests lr
    JOIN employees e ON e.id = lr.employee_id
    WHERE lr.employee_id = $1
    ORDER BY lr.created_at DESC
  `, employeeID)
}

// ListForManager scopes the bulk view to the manager's team references.
func (s *Service) ListForManager(ctx context.Context, managerID string) ([]Request, error) {
	return s.list(ctx, `
    SELECT lr.id, lr.employee_id, e.name, lr.category, lr.start_date, lr.end_date, lr.reason, lr.status,
           COALESCE(lr.approved_by::text, ''), COALESCE(lr.approver_role, ''), lr.created_at, lr.approved_at
    FROM leave_requests lr
    JOIN employees e ON e.id = lr.employee_id
    WHERE lr.employee_id IN (SELECT employee_id FROM manager_team WHERE manager_id = $1)
    ORDER BY lr.created_at DESC
  `, managerID)
}

func (s *Service) ListAll(ctx context.Context) ([]Request, error) {
	return s.list(ctx, `
    SELECT lr.id, lr.employee_id, e.name, lr.category, lr.start_date, lr.end_date, lr.reason, lr.status,
           COALESCE(lr.approved_by::text, ''), COALESCE(lr.approver_role, ''), lr.created_at, lr.approved_at
    FROM leave_requests lr
    JOIN employees e ON e.id = lr.employee_id
    ORDER BY lr.created_at DESC
  `)
}

func (s *Service) list(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &req.Category, &req.StartDate, &req.EndDate,
			&req.Reason, &req.Status, &req.ApprovedBy, &req.ApproverRole, &req.CreatedAt, &req.ApprovedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
