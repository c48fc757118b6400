package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db *sql.DB
}

func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, id, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)`,
		id, email, nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return true, nil
}

func (r *SQLiteUserRepo) MarkOnboardingComplete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET onboarding_completed_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("marking onboarding complete: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteUserRepo) OnboardingCompleted(ctx context.Context, id string) (bool, error) {
	var completedAt sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT onboarding_completed_at FROM users WHERE id = ?`, id).Scan(&completedAt)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("reading onboarding status: %w", err)
	}
	return completedAt.Valid && completedAt.String != "", nil
}
