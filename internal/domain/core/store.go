package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrm/internal/domain/auth"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Resolve probes the hr, manager and employee stores in that fixed priority
// order and returns the first account matching the email. Implements
// auth.Resolver.
func (s *Store) Resolve(ctx context.Context, email string) (auth.Identity, error) {
	var out auth.Identity

	err := s.DB.QueryRow(ctx, `
    SELECT id, email, name, password_hash
    FROM admins
    WHERE email = $1
  `, email).Scan(&out.ID, &out.Email, &out.Name, &out.PasswordHash)
	if err == nil {
		out.RoleName = auth.RoleHR
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return auth.Identity{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT id, email, name, password_hash, department
    FROM managers
    WHERE email = $1
  `, email).Scan(&out.ID, &out.Email, &out.Name, &out.PasswordHash, &out.Department)
	if err == nil {
		out.RoleName = auth.RoleManager
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return auth.Identity{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT id, email, name, password_hash, department
    FROM employees
    WHERE email = $1
  `, email).Scan(&out.ID, &out.Email, &out.Name, &out.PasswordHash, &out.Department)
	if err == nil {
		out.RoleName = auth.RoleEmployee
		return out, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.Identity{}, auth.ErrNoIdentity
	}
	return auth.Identity{}, err
}

type RegisterAdmin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
}

type RegisterManager struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone"`
	Department string `json:"department" validate:"required"`
}

type RegisterEmployee struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	Name             string `json:"name" validate:"required"`
	Phone            string `json:"phone"`
	Department       string `json:"department" validate:"required"`
	Position         string `json:"position" validate:"required"`
	EmergencyContact string `json:"emergencyContact"`
}

func (s *Store) CreateAdmin(ctx context.Context, payload RegisterAdmin, passwordHash string) (string, error) {
	if err := s.checkEmailFree(ctx, "admins", payload.Email); err != nil {
		return "", err
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO admins (email, name, phone, password_hash)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, payload.Email, payload.Name, payload.Phone, passwordHash).Scan(&id)
	return id, err
}

func (s *Store) CreateManager(ctx context.Context, payload RegisterManager, passwordHash string) (string, error) {
	if err := s.checkEmailFree(ctx, "managers", payload.Email); err != nil {
		return "", err
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO managers (email, name, phone, department, password_hash)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, payload.Email, payload.Name, payload.Phone, payload.Department, passwordHash).Scan(&id)
	return id, err
}

func (s *Store) CreateEmployee(ctx context.Context, payload RegisterEmployee, passwordHash string) (string, error) {
	if err := s.checkEmailFree(ctx, "employees", payload.Email); err != nil {
		return "", err
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (email, name, phone, department, position, emergency_contact, status, password_hash)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, payload.Email, payload.Name, payload.Phone, payload.Department, payload.Position, payload.EmergencyContact, StatusActive, passwordHash).Scan(&id)
	return id, err
}

// Email uniqueness is per account store; the same email in another store is
// allowed and resolved by probe order at login.
func (s *Store) checkEmailFree(ctx context.Context, table, email string) error {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1)", table)
	if err := s.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, role auth.Role, id string) (Profile, error) {
	var p Profile
	var err error
	switch role {
	case auth.RoleHR:
		err = s.DB.QueryRow(ctx, `
      SELECT id, email, name, phone, created_at
      FROM admins
      WHERE id = $1
    `, id).Scan(&p.ID, &p.Email, &p.Name, &p.Phone, &p.CreatedAt)
	case auth.RoleManager:
		err = s.DB.QueryRow(ctx, `
      SELECT id, email, name, phone, department, created_at
      FROM managers
      WHERE id = $1
    `, id).Scan(&p.ID, &p.Email, &p.Name, &p.Phone, &p.Department, &p.CreatedAt)
	case auth.RoleEmployee:
		err = s.DB.QueryRow(ctx, `
      SELECT id, email, name, phone, department, position, status, emergency_contact, COALESCE(profile_picture, ''), created_at
      FROM employees
      WHERE id = $1
    `, id).Scan(&p.ID, &p.Email, &p.Name, &p.Phone, &p.Department, &p.Position, &p.Status, &p.EmergencyContact, &p.ProfilePicture, &p.CreatedAt)
	default:
		return Profile{}, fmt.Errorf("unknown role %q", role)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	p.Role = string(role)
	return p, nil
}

// UpdateProfile writes the self-editable contact fields. An empty
// picturePath leaves the stored picture untouched.
func (s *Store) UpdateProfile(ctx context.Context, role auth.Role, id, phone, emergencyContact, picturePath string) error {
	var err error
	switch role {
	case auth.RoleHR:
		_, err = s.DB.Exec(ctx, "UPDATE admins SET phone = $1 WHERE id = $2", phone, id)
	case auth.RoleManager:
		_, err = s.DB.Exec(ctx, "UPDATE managers SET phone = $1 WHERE id = $2", phone, id)
	case auth.RoleEmployee:
		if picturePath != "" {
			_, err = s.DB.Exec(ctx, `
        UPDATE employees
        SET phone = $1, emergency_contact = $2, profile_picture = $3
        WHERE id = $4
      `, phone, emergencyContact, picturePath, id)
		} else {
			_, err = s.DB.Exec(ctx, `
        UPDATE employees
        SET phone = $1, emergency_contact = $2
        WHERE id = $3
      `, phone, emergencyContact, id)
		}
	default:
		err = fmt.Errorf("unknown role %q", role)
	}
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, name, phone, department, position, status, emergency_contact, COALESCE(profile_picture, ''), join_date, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.Email, &e.Name, &e.Phone, &e.Department, &e.Position, &e.Status, &e.EmergencyContact, &e.ProfilePicture, &e.JoinDate, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

// ListEmployees returns the whole directory. Manager access is deliberately
// broadened to all employees here, not just direct reports.
func (s *Store) ListEmployees(ctx context.Context, department, search string) ([]Employee, error) {
	query := `
    SELECT id, email, name, phone, department, position, status, emergency_contact, COALESCE(profile_picture, ''), join_date, created_at
    FROM employees
    WHERE 1=1
  `
	var args []any
	if department != "" {
		args = append(args, department)
		query += fmt.Sprintf(" AND department = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		query += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Email, &e.Name, &e.Phone, &e.Department, &e.Position, &e.Status, &e.EmergencyContact, &e.ProfilePicture, &e.JoinDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEmployeeStatus(ctx context.Context, employeeID string, status EmployeeStatus) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET status = $1 WHERE id = $2", status, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TeamContains reports whether the employee is on the manager's team. Both
// sides are uuid columns, so membership is a typed equality check rather
// than a loose value comparison.
func (s *Store) TeamContains(ctx context.Context, managerID, employeeID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (
      SELECT 1 FROM manager_team
      WHERE manager_id = $1 AND employee_id = $2
    )
  `, managerID, employeeID).Scan(&exists)
	return exists, err
}

func (s *Store) AddTeamMember(ctx context.Context, managerID, employeeID string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO manager_team (manager_id, employee_id, position)
    VALUES ($1, $2, COALESCE((SELECT MAX(position) + 1 FROM manager_team WHERE manager_id = $1), 0))
    ON CONFLICT (manager_id, employee_id) DO NOTHING
  `, managerID, employeeID)
	return err
}

func (s *Store) RemoveTeamMember(ctx context.Context, managerID, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM manager_team WHERE manager_id = $1 AND employee_id = $2", managerID, employeeID)
	return err
}

func (s *Store) TeamMembers(ctx context.Context, managerID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.email, e.name, e.phone, e.department, e.position, e.status, e.emergency_contact, COALESCE(e.profile_picture, ''), e.join_date, e.created_at
    FROM manager_team mt
    JOIN employees e ON e.id = mt.employee_id
    WHERE mt.manager_id = $1
    ORDER BY mt.position
  `, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Email, &e.Name, &e.Phone, &e.Department, &e.Position, &e.Status, &e.EmergencyContact, &e.ProfilePicture, &e.JoinDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
