package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("payroll record not found")

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Create(ctx context.Context, employeeID string, baseSalary, bonus, deduction float64, bonusDesc, deductionDesc, month string) (Record, error) {
	rec := Record{
		EmployeeID:           employeeID,
		BaseSalary:           baseSalary,
		Bonus:                bonus,
		BonusDescription:     bonusDesc,
		Deduction:            deduction,
		DeductionDescription: deductionDesc,
		NetSalary:            Net(baseSalary, bonus, deduction),
		Status:               StatusPending,
		Month:                month,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_records (employee_id, base_salary, bonus, bonus_description, deduction, deduction_description, net_salary, status, month)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id, created_at
  `, employeeID, baseSalary, bonus, bonusDesc, deduction, deductionDesc, rec.NetSalary, StatusPending, month).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    SELECT pr.id, pr.employee_id, e.name, e.department, pr.base_salary, pr.bonus, pr.bonus_description,
           pr.deduction, pr.deduction_description, pr.net_salary, pr.status, pr.month, pr.created_at
    FROM payroll_records pr
    JOIN employees e ON e.id = pr.employee_id
    WHERE pr.id = $1
  `, id).Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Department, &rec.BaseSalary, &rec.Bonus,
		&rec.BonusDescription, &rec.Deduction, &rec.DeductionDescription, &rec.NetSalary, &rec.Status, &rec.Month, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

type Filter struct {
	Month      string
	Search     string
	Department string
	EmployeeID string
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := `
    SELECT pr.id, pr.employee_id, e.name, e.department, pr.base_salary, pr.bonus, pr.bonus_description,
           pr.deduction, pr.deduction_description, pr.net_salary, pr.status, pr.month, pr.created_at
    FROM payroll_records pr
    JOIN employees e ON e.id = pr.employee_id
    WHERE 1=1
  `
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND pr.employee_id = $%d", len(args))
	}
	if filter.Month != "" {
		args = append(args, filter.Month)
		query += fmt.Sprintf(" AND pr.month = $%d", len(args))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		query += fmt.Sprintf(" AND e.department = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		query += fmt.Sprintf(" AND (LOWER(e.name) LIKE $%d OR LOWER(e.email) LIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY pr.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Department, &rec.BaseSalary, &rec.Bonus,
			&rec.BonusDescription, &rec.Deduction, &rec.DeductionDescription, &rec.NetSalary, &rec.Status, &rec.Month, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Patch carries the adjustable fields. Nil pointers leave the stored value
// unchanged; net salary is always rederived from the final amounts.
type Patch struct {
	BaseSalary           *float64 `json:"baseSalary"`
	Bonus                *float64 `json:"bonus"`
	BonusDescription     *string  `json:"bonusDescription"`
	Deduction            *float64 `json:"deduction"`
	DeductionDescription *string  `json:"deductionDescription"`
	Status               *string  `json:"status"`
	Month                *string  `json:"month"`
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if patch.BaseSalary != nil {
		rec.BaseSalary = *patch.BaseSalary
	}
	if patch.Bonus != nil {
		rec.Bonus = *patch.Bonus
	}
	if patch.BonusDescription != nil {
		rec.BonusDescription = *patch.BonusDescription
	}
	if patch.Deduction != nil {
		rec.Deduction = *patch.Deduction
	}
	if patch.DeductionDescription != nil {
		rec.DeductionDescription = *patch.DeductionDescription
	}
	if patch.Status != nil {
		status, err := ParseStatus(*patch.Status)
		if err != nil {
			return Record{}, err
		}
		rec.Status = status
	}
	if patch.Month != nil {
		rec.Month = *patch.Month
	}
	rec.NetSalary = Net(rec.BaseSalary, rec.Bonus, rec.Deduction)

	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET base_salary = $1, bonus = $2, bonus_description = $3, deduction = $4, deduction_description = $5,
        net_salary = $6, status = $7, month = $8
    WHERE id = $9
  `, rec.BaseSalary, rec.Bonus, rec.BonusDescription, rec.Deduction, rec.DeductionDescription,
		rec.NetSalary, rec.Status, rec.Month, id)
	if err != nil {
		return Record{}, err
	}
	if tag.RowsAffected() == 0 {
		return Record{}, ErrNotFound
	}
	return rec, nil
}
