package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amreid/nextup/internal/domain"
)

const goalColumns = `id, user_id, title, notes, status, created_at, updated_at`

// SQLiteGoalRepo implements GoalRepo using a SQLite database.
type SQLiteGoalRepo struct {
	db *sql.DB
}

func NewSQLiteGoalRepo(db *sql.DB) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: db}
}

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, notes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.UserID,
		g.Title,
		g.Notes,
		string(g.Status),
		g.CreatedAt.UTC().Format(time.RFC3339),
		g.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ? AND user_id = ?`
	var g domain.Goal
	var status, createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&g.ID, &g.UserID, &g.Title, &g.Notes, &status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting goal: %w", err)
	}
	fillGoal(&g, status, createdAt, updatedAt)
	return &g, nil
}

func (r *SQLiteGoalRepo) List(ctx context.Context, userID string, includeArchived bool) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ?`
	if !includeArchived {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var out []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var status, createdAt, updatedAt string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Notes, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		fillGoal(&g, status, createdAt, updatedAt)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	query := `UPDATE goals SET title = ?, notes = ?, updated_at = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, g.Title, g.Notes, nowUTC(), g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteGoalRepo) Archive(ctx context.Context, userID, id string) error {
	query := `UPDATE goals SET status = 'archived', updated_at = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id, userID)
	if err != nil {
		return fmt.Errorf("archiving goal: %w", err)
	}
	return requireRow(res)
}

func fillGoal(g *domain.Goal, status, createdAt, updatedAt string) {
	g.Status = domain.GoalStatus(status)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		g.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		g.UpdatedAt = ts
	}
}
