package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amreid/nextup/internal/domain"
)

const eventColumns = `id, user_id, task_id, context_time_minutes, context_energy,
		context_urgency, explanation, confidence, score, decision, created_at`

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db *sql.DB
}

func NewSQLiteEventRepo(db *sql.DB) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: db}
}

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.RecommendationEvent) error {
	query := `INSERT INTO recommendation_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.TaskID,
		e.ContextTimeMinutes,
		string(e.ContextEnergy),
		string(e.ContextUrgency),
		e.Explanation,
		string(e.Confidence),
		e.Score,
		string(e.Decision),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting recommendation event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) ListRecent(ctx context.Context, userID string, limit int) ([]domain.RecommendationEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM recommendation_events
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recommendation events: %w", err)
	}
	defer rows.Close()

	var out []domain.RecommendationEvent
	for rows.Next() {
		var e domain.RecommendationEvent
		var energy, urgency, confidence, decision, createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.TaskID, &e.ContextTimeMinutes,
			&energy, &urgency, &e.Explanation, &confidence, &e.Score, &decision, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning recommendation event: %w", err)
		}
		e.ContextEnergy = domain.Energy(energy)
		e.ContextUrgency = domain.Urgency(urgency)
		e.Confidence = domain.Confidence(confidence)
		e.Decision = domain.Decision(decision)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = ts
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteEventRepo) SetDecision(ctx context.Context, userID, id string, decision domain.Decision) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recommendation_events SET decision = ?
		 WHERE id = ? AND user_id = ? AND decision = 'pending'`,
		string(decision), id, userID,
	)
	if err != nil {
		return fmt.Errorf("setting event decision: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		var current string
		err := r.db.QueryRowContext(ctx,
			`SELECT decision FROM recommendation_events WHERE id = ? AND user_id = ?`,
			id, userID,
		).Scan(&current)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("checking event state: %w", err)
		}
		return ErrAlreadyDecided
	}
	return nil
}
