package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// OpenDB already migrated; a second run must be a no-op.
	require.NoError(t, Migrate(database))
}

func TestMigrate_CreatesExpectedTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{
		"users", "goals", "tasks", "user_interests",
		"generated_suggestions", "recommendation_events", "llm_budgets",
	} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_DecisionCheckConstraint(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO users (id, email, created_at) VALUES ('u1', 'u1@example.com', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO generated_suggestions
		(id, user_id, context_time_minutes, context_energy, context_urgency, context_uniqueness,
		 title, next_action, estimated_minutes, confidence, decision, created_at, updated_at)
		VALUES ('s1', 'u1', 60, 'med', 'med', 'related', 't', 'n', 30, 'med', 'bogus',
		 '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "invalid decision value rejected")
}
