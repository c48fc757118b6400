package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amreid/nextup/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, user_id, goal_id, title, notes, estimated_minutes,
		estimated_input, priority, urgency, deadline_at, status, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db *sql.DB
}

func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, user_id, goal_id, title, notes, estimated_minutes,
		estimated_input, priority, urgency, deadline_at, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		nullableStrToValue(t.GoalID),
		t.Title,
		t.Notes,
		nullableIntToValue(t.EstimatedMinutes),
		t.EstimatedInput,
		nullableIntToValue(t.Priority),
		nullableIntToValue(t.Urgency),
		nullableTimeToString(t.DeadlineAt, time.RFC3339),
		string(t.Status),
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListOpen(ctx context.Context, userID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND status = 'todo'
		ORDER BY deadline_at IS NULL, deadline_at ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing open tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListOpenWithGoals joins in each task's goal title. A limit of zero or less
// returns all rows; SQLite reads a negative LIMIT as unlimited.
func (r *SQLiteTaskRepo) ListOpenWithGoals(ctx context.Context, userID string, limit int) ([]TaskWithGoal, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT t.id, t.user_id, t.goal_id, t.title, t.notes, t.estimated_minutes,
		t.estimated_input, t.priority, t.urgency, t.deadline_at, t.status, t.created_at, t.updated_at,
		COALESCE(g.title, '')
		FROM tasks t
		LEFT JOIN goals g ON t.goal_id = g.id
		WHERE t.user_id = ? AND t.status = 'todo'
		ORDER BY t.created_at ASC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing open tasks with goals: %w", err)
	}
	defer rows.Close()

	var out []TaskWithGoal
	for rows.Next() {
		var t domain.Task
		var goalID, notes, deadlineAt sql.NullString
		var estMin, priority, urgency sql.NullInt64
		var status, createdAt, updatedAt, goalTitle string
		if err := rows.Scan(&t.ID, &t.UserID, &goalID, &t.Title, &notes, &estMin,
			&t.EstimatedInput, &priority, &urgency, &deadlineAt, &status,
			&createdAt, &updatedAt, &goalTitle); err != nil {
			return nil, fmt.Errorf("scanning task with goal: %w", err)
		}
		fillTask(&t, goalID, notes, estMin, priority, urgency, deadlineAt, status, createdAt, updatedAt)
		out = append(out, TaskWithGoal{Task: t, GoalTitle: goalTitle})
	}
	return out, rows.Err()
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET goal_id = ?, title = ?, notes = ?, estimated_minutes = ?,
		estimated_input = ?, priority = ?, urgency = ?, deadline_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStrToValue(t.GoalID),
		t.Title,
		t.Notes,
		nullableIntToValue(t.EstimatedMinutes),
		t.EstimatedInput,
		nullableIntToValue(t.Priority),
		nullableIntToValue(t.Urgency),
		nullableTimeToString(t.DeadlineAt, time.RFC3339),
		nowUTC(),
		t.ID,
		t.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteTaskRepo) Archive(ctx context.Context, userID, id string) error {
	query := `UPDATE tasks SET status = 'archived', updated_at = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id, userID)
	if err != nil {
		return fmt.Errorf("archiving task: %w", err)
	}
	return requireRow(res)
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var goalID, notes, deadlineAt sql.NullString
	var estMin, priority, urgency sql.NullInt64
	var status, createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.UserID, &goalID, &t.Title, &notes, &estMin,
		&t.EstimatedInput, &priority, &urgency, &deadlineAt, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	fillTask(&t, goalID, notes, estMin, priority, urgency, deadlineAt, status, createdAt, updatedAt)
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	var out []domain.Task
	for rows.Next() {
		var t domain.Task
		var goalID, notes, deadlineAt sql.NullString
		var estMin, priority, urgency sql.NullInt64
		var status, createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.UserID, &goalID, &t.Title, &notes, &estMin,
			&t.EstimatedInput, &priority, &urgency, &deadlineAt, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		fillTask(&t, goalID, notes, estMin, priority, urgency, deadlineAt, status, createdAt, updatedAt)
		out = append(out, t)
	}
	return out, rows.Err()
}

func fillTask(t *domain.Task,
	goalID, notes sql.NullString,
	estMin, priority, urgency sql.NullInt64,
	deadlineAt sql.NullString,
	status, createdAt, updatedAt string,
) {
	t.GoalID = nullableStrFromSQL(goalID)
	if notes.Valid {
		t.Notes = notes.String
	}
	t.EstimatedMinutes = nullableIntFromSQL(estMin)
	t.Priority = nullableIntFromSQL(priority)
	t.Urgency = nullableIntFromSQL(urgency)
	t.DeadlineAt = parseNullableTime(deadlineAt, time.RFC3339)
	t.Status = domain.TaskStatus(status)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		t.UpdatedAt = ts
	}
}

func nullableStrToValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
