package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; re-running
// on an up-to-date database is a no-op.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			// Tolerate re-applied ALTER TABLE statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                      TEXT PRIMARY KEY,
		email                   TEXT NOT NULL UNIQUE,
		onboarding_completed_at TEXT,
		created_at              TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','archived')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		goal_id           TEXT REFERENCES goals(id) ON DELETE SET NULL,
		title             TEXT NOT NULL,
		notes             TEXT NOT NULL DEFAULT '',
		estimated_minutes INTEGER,
		estimated_input   TEXT NOT NULL DEFAULT '',
		priority          INTEGER CHECK(priority IS NULL OR priority BETWEEN 1 AND 5),
		urgency           INTEGER CHECK(urgency IS NULL OR urgency BETWEEN 1 AND 5),
		deadline_at       TEXT,
		status            TEXT NOT NULL DEFAULT 'todo'
		                  CHECK(status IN ('todo','archived')),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_user_status ON tasks(user_id, status)`,

	`CREATE TABLE IF NOT EXISTS user_interests (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		label      TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_interests_user ON user_interests(user_id)`,

	`CREATE TABLE IF NOT EXISTS generated_suggestions (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		context_time_minutes INTEGER NOT NULL,
		context_energy       TEXT NOT NULL CHECK(context_energy IN ('low','med','high')),
		context_urgency      TEXT NOT NULL CHECK(context_urgency IN ('low','med','high')),
		context_uniqueness   TEXT NOT NULL CHECK(context_uniqueness IN ('familiar','related','novel')),
		title                TEXT NOT NULL,
		next_action          TEXT NOT NULL,
		estimated_minutes    INTEGER NOT NULL,
		tags                 TEXT NOT NULL DEFAULT '[]',
		reasoning            TEXT NOT NULL DEFAULT '',
		confidence           TEXT NOT NULL CHECK(confidence IN ('low','med','high')),
		model                TEXT NOT NULL DEFAULT '',
		source_features      TEXT NOT NULL DEFAULT '[]',
		shortlist_hash       TEXT NOT NULL DEFAULT '',
		decision             TEXT NOT NULL DEFAULT 'pending'
		                     CHECK(decision IN ('pending','accepted','skipped')),
		created_task_id      TEXT,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_generated_suggestions_user_created
		ON generated_suggestions(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS recommendation_events (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		task_id              TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		context_time_minutes INTEGER NOT NULL,
		context_energy       TEXT NOT NULL,
		context_urgency      TEXT NOT NULL,
		explanation          TEXT NOT NULL DEFAULT '',
		confidence           TEXT NOT NULL DEFAULT 'med',
		score                REAL NOT NULL DEFAULT 0,
		decision             TEXT NOT NULL DEFAULT 'pending'
		                     CHECK(decision IN ('pending','accepted','skipped')),
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_recommendation_events_user_created
		ON recommendation_events(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS llm_budgets (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		day     TEXT NOT NULL,
		count   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, day)
	)`,
}
