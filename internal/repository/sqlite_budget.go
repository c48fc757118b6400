package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteBudgetRepo implements BudgetRepo using a SQLite database. The counter
// row is keyed (user_id, day) and incremented with an upsert, so concurrent
// requests for the same user never undercount.
type SQLiteBudgetRepo struct {
	db *sql.DB
}

func NewSQLiteBudgetRepo(db *sql.DB) *SQLiteBudgetRepo {
	return &SQLiteBudgetRepo{db: db}
}

func (r *SQLiteBudgetRepo) IncrementAndGet(ctx context.Context, userID string, day string) (int, error) {
	query := `INSERT INTO llm_budgets (user_id, day, count) VALUES (?, ?, 1)
		ON CONFLICT(user_id, day) DO UPDATE SET count = count + 1
		RETURNING count`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("incrementing llm budget: %w", err)
	}
	return count, nil
}

func (r *SQLiteBudgetRepo) Get(ctx context.Context, userID string, day string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count FROM llm_budgets WHERE user_id = ? AND day = ?`, userID, day,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading llm budget: %w", err)
	}
	return count, nil
}
