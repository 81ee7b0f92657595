package announcements

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Create(ctx context.Context, title, body, author, category string, urgency Urgency) (Announcement, error) {
	out := Announcement{
		Title:    title,
		Body:     body,
		Author:   author,
		Category: category,
		Urgency:  urgency,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO announcements (title, body, author, category, urgency)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id, created_at
  `, title, body, author, category, urgency).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return Announcement{}, err
	}
	return out, nil
}

func (s *Service) List(ctx context.Context) ([]Announcement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, body, author, category, urgency, created_at
    FROM announcements
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Author, &a.Category, &a.Urgency, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
