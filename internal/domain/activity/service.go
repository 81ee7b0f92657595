package activity

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Append(ctx context.Context, e Entry) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO activity_logs (actor_id, actor_name, actor_role, action, module, detail, ip)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, e.ActorID, e.ActorName, e.ActorRole, e.Action, e.Module, e.Detail, e.IP)
	return err
}

type Filter struct {
	Module string
	Search string
	Limit  int
}

func (s *Service) List(ctx context.Context, f Filter) ([]Entry, error) {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 200
	}

	query := `
    SELECT id, actor_id, actor_name, actor_role, action, module, detail, ip, created_at
    FROM activity_logs
    WHERE 1=1`
	args := []any{}

	if f.Module != "" {
		args = append(args, f.Module)
		query += ` AND module = $1`
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (actor_name ILIKE $` + n + ` OR action ILIKE $` + n + `)`
	}
	args = append(args, f.Limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorName, &e.ActorRole, &e.Action, &e.Module, &e.Detail, &e.IP, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
