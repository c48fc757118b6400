package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amreid/nextup/internal/domain"
)

const suggestionColumns = `id, user_id, context_time_minutes, context_energy,
		context_urgency, context_uniqueness, title, next_action, estimated_minutes,
		tags, reasoning, confidence, model, source_features, shortlist_hash,
		decision, created_task_id, created_at, updated_at`

// SQLiteSuggestionRepo implements SuggestionRepo using a SQLite database.
type SQLiteSuggestionRepo struct {
	db *sql.DB
}

func NewSQLiteSuggestionRepo(db *sql.DB) *SQLiteSuggestionRepo {
	return &SQLiteSuggestionRepo{db: db}
}

func (r *SQLiteSuggestionRepo) Create(ctx context.Context, s *domain.GeneratedSuggestion) error {
	query := `INSERT INTO generated_suggestions (` + suggestionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.ContextTimeMinutes,
		string(s.ContextEnergy),
		string(s.ContextUrgency),
		string(s.ContextUniqueness),
		s.Title,
		s.NextAction,
		s.EstimatedMinutes,
		encodeStringList(s.Tags),
		s.Reasoning,
		string(s.Confidence),
		s.Model,
		encodeStringList(s.SourceFeatures),
		s.ShortlistHash,
		string(s.Decision),
		nullableStrToValue(s.CreatedTaskID),
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting suggestion: %w", err)
	}
	return nil
}

func (r *SQLiteSuggestionRepo) GetByID(ctx context.Context, userID, id string) (*domain.GeneratedSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM generated_suggestions WHERE id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	s, err := scanSuggestion(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting suggestion: %w", err)
	}
	return s, nil
}

func (r *SQLiteSuggestionRepo) ListRecent(ctx context.Context, userID string, limit int) ([]domain.GeneratedSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM generated_suggestions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent suggestions: %w", err)
	}
	defer rows.Close()

	var out []domain.GeneratedSuggestion
	for rows.Next() {
		s, err := scanSuggestion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning suggestion: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SQLiteSuggestionRepo) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM generated_suggestions WHERE user_id = ? AND created_at >= ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, since.UTC().Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting suggestions: %w", err)
	}
	return count, nil
}

// Accept spawns the task and marks the suggestion accepted in one transaction.
// The decision update is guarded on decision = 'pending' so a second accept or
// an accept-after-skip cannot create a second task.
func (r *SQLiteSuggestionRepo) Accept(ctx context.Context, userID, id string, spawned *domain.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting accept transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE generated_suggestions
		 SET decision = 'accepted', created_task_id = ?, updated_at = ?
		 WHERE id = ? AND user_id = ? AND decision = 'pending'`,
		spawned.ID, nowUTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("accepting suggestion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return classifyGuardFailure(ctx, tx, userID, id)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, goal_id, title, notes, estimated_minutes,
			estimated_input, priority, urgency, deadline_at, status, created_at, updated_at)
		 VALUES (?, ?, NULL, ?, ?, ?, '', NULL, NULL, NULL, 'todo', ?, ?)`,
		spawned.ID,
		spawned.UserID,
		spawned.Title,
		spawned.Notes,
		nullableIntToValue(spawned.EstimatedMinutes),
		spawned.CreatedAt.UTC().Format(time.RFC3339),
		spawned.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating task from suggestion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing accept: %w", err)
	}
	committed = true
	return nil
}

func (r *SQLiteSuggestionRepo) Skip(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE generated_suggestions
		 SET decision = 'skipped', updated_at = ?
		 WHERE id = ? AND user_id = ? AND decision = 'pending'`,
		nowUTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("skipping suggestion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return classifyGuardFailure(ctx, r.db, userID, id)
	}
	return nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// classifyGuardFailure distinguishes a missing row from an already-decided one
// after a guarded UPDATE matched nothing. The query must run on the same
// connection as the UPDATE, so Accept passes its open transaction.
func classifyGuardFailure(ctx context.Context, q rowQuerier, userID, id string) error {
	var decision string
	err := q.QueryRowContext(ctx,
		`SELECT decision FROM generated_suggestions WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&decision)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking suggestion state: %w", err)
	}
	return ErrAlreadyDecided
}

func scanSuggestion(scan func(dest ...any) error) (*domain.GeneratedSuggestion, error) {
	var s domain.GeneratedSuggestion
	var energy, urgency, uniqueness, confidence, decision string
	var tags, sourceFeatures string
	var createdTaskID sql.NullString
	var createdAt, updatedAt string
	err := scan(&s.ID, &s.UserID, &s.ContextTimeMinutes, &energy, &urgency, &uniqueness,
		&s.Title, &s.NextAction, &s.EstimatedMinutes, &tags, &s.Reasoning, &confidence,
		&s.Model, &sourceFeatures, &s.ShortlistHash, &decision, &createdTaskID,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.ContextEnergy = domain.Energy(energy)
	s.ContextUrgency = domain.Urgency(urgency)
	s.ContextUniqueness = domain.Uniqueness(uniqueness)
	s.Confidence = domain.Confidence(confidence)
	s.Decision = domain.Decision(decision)
	s.Tags = decodeStringList(tags)
	s.SourceFeatures = decodeStringList(sourceFeatures)
	s.CreatedTaskID = nullableStrFromSQL(createdTaskID)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		s.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		s.UpdatedAt = ts
	}
	return &s, nil
}
