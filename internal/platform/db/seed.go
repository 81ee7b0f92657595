package db

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrm/internal/domain/auth"
	"hrm/internal/platform/config"
)

// Seed bootstraps the first HR account so a fresh install can log in.
// Existing installs are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedHREmail)
	if email == "" {
		return nil
	}

	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`, email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	password := cfg.SeedHRPassword
	if password == "" {
		password = "changeme123"
		slog.Warn("seeding HR account with default password, change it immediately", "email", email)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
    INSERT INTO admins (email, name, phone, password_hash)
    VALUES ($1,$2,'',$3)
  `, email, cfg.SeedHRName, hash); err != nil {
		return err
	}
	slog.Info("seeded HR account", "email", email)
	return nil
}
