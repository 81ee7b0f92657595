package attendance

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAlreadyClockedIn = errors.New("already clocked in today")
	ErrNotClockedIn     = errors.New("no open attendance entry today")
)

const autoClockOutWorkers = 8

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) ClockIn(ctx context.Context, employeeID string, now time.Time) (Entry, error) {
	day := DayStart(now)

	var exists bool
	if err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM attendance WHERE employee_id = $1 AND work_date = $2)
  `, employeeID, day).Scan(&exists); err != nil {
		return Entry{}, err
	}
	if exists {
		return Entry{}, ErrAlreadyClockedIn
	}

	entry := Entry{EmployeeID: employeeID, WorkDate: day, ClockIn: now}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, work_date, clock_in)
    VALUES ($1,$2,$3)
    RETURNING id
  `, employeeID, day, now).Scan(&entry.ID)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Service) ClockOut(ctx context.Context, employeeID string, now time.Time) (Entry, error) {
	day := DayStart(now)

	var entry Entry
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, work_date, clock_in
    FROM attendance
    WHERE employee_id = $1 AND work_date = $2 AND clock_out IS NULL
  `, employeeID, day).Scan(&entry.ID, &entry.EmployeeID, &entry.WorkDate, &entry.ClockIn)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotClockedIn
	}
	if err != nil {
		return Entry{}, err
	}

	hours, err := HoursBetween(entry.ClockIn, now)
	if err != nil {
		return Entry{}, err
	}

	if _, err := s.DB.Exec(ctx, `
    UPDATE attendance
    SET clock_out = $1, hours_worked = $2, auto_clock_out = false
    WHERE id = $3 AND clock_out IS NULL
  `, now, hours, entry.ID); err != nil {
		return Entry{}, err
	}
	entry.ClockOut = &now
	entry.HoursWorked = hours
	return entry, nil
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string, limit int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, clock_in, clock_out, COALESCE(hours_worked, 0), auto_clock_out
    FROM attendance
    WHERE employee_id = $1
    ORDER BY work_date DESC
    LIMIT $2
  `, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.WorkDate, &e.ClockIn, &e.ClockOut, &e.HoursWorked, &e.AutoClockOut); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type openEntry struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	ClockIn      time.Time
}

// AutoClockOut closes every attendance entry for the given day that has a
// clock-in but no clock-out. Entries are processed concurrently; a failure
// on one employee is logged and skipped so it never aborts the rest of the
// batch.
func (s *Service) AutoClockOut(ctx context.Context, now time.Time) ([]AutoClockOutResult, error) {
	day := DayStart(now)

	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.employee_id, e.name, a.clock_in
    FROM attendance a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.work_date = $1 AND a.clock_out IS NULL
  `, day)
	if err != nil {
		return nil, err
	}
	open, err := collectOpenEntries(rows)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []AutoClockOutResult
	)
	sem := make(chan struct{}, autoClockOutWorkers)
	for _, entry := range open {
		wg.Add(1)
		sem <- struct{}{}
		go func(entry openEntry) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := s.closeEntry(ctx, entry, now)
			if err != nil {
				slog.Warn("auto clock-out skipped employee", "employeeId", entry.EmployeeID, "err", err)
				return
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(entry)
	}
	wg.Wait()

	return results, nil
}

func (s *Service) closeEntry(ctx context.Context, entry openEntry, now time.Time) (AutoClockOutResult, error) {
	hours, err := HoursBetween(entry.ClockIn, now)
	if err != nil {
		return AutoClockOutResult{}, err
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance
    SET clock_out = $1, hours_worked = $2, auto_clock_out = true
    WHERE id = $3 AND clock_out IS NULL
  `, now, hours, entry.ID)
	if err != nil {
		return AutoClockOutResult{}, err
	}
	if tag.RowsAffected() == 0 {
		return AutoClockOutResult{}, errors.New("entry already closed")
	}

	return AutoClockOutResult{
		EmployeeID:   entry.EmployeeID,
		EmployeeName: entry.EmployeeName,
		ClockOut:     now,
		HoursWorked:  hours,
	}, nil
}

func collectOpenEntries(rows pgx.Rows) ([]openEntry, error) {
	defer rows.Close()
	var out []openEntry
	for rows.Next() {
		var e openEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EmployeeName, &e.ClockIn); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
