package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amreid/nextup/internal/domain"
	"github.com/google/uuid"
)

// SQLiteInterestRepo implements InterestRepo using a SQLite database.
type SQLiteInterestRepo struct {
	db *sql.DB
}

func NewSQLiteInterestRepo(db *sql.DB) *SQLiteInterestRepo {
	return &SQLiteInterestRepo{db: db}
}

func (r *SQLiteInterestRepo) List(ctx context.Context, userID string) ([]domain.Interest, error) {
	query := `SELECT id, user_id, label, created_at FROM user_interests
		WHERE user_id = ? ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing interests: %w", err)
	}
	defer rows.Close()

	var out []domain.Interest
	for rows.Next() {
		var in domain.Interest
		var createdAt string
		if err := rows.Scan(&in.ID, &in.UserID, &in.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning interest: %w", err)
		}
		in.CreatedAt = parseTimeOrZero(createdAt)
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *SQLiteInterestRepo) Replace(ctx context.Context, userID string, labels []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting interest replace: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_interests WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing interests: %w", err)
	}

	now := nowUTC()
	for _, label := range labels {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_interests (id, user_id, label, created_at) VALUES (?, ?, ?, ?)`,
			uuid.New().String(), userID, label, now,
		); err != nil {
			return fmt.Errorf("inserting interest: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing interest replace: %w", err)
	}
	committed = true
	return nil
}
