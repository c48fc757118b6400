package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/repository"
	"github.com/amreid/nextup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, database, "u1")
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	deadline := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	task := testutil.NewTestTask(userID, "Write report",
		testutil.WithEstimate(45),
		testutil.WithPriority(4),
		testutil.WithUrgency(3),
		testutil.WithDeadline(deadline),
		testutil.WithNotes("quarterly numbers"),
	)
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "quarterly numbers", got.Notes)
	require.NotNil(t, got.EstimatedMinutes)
	assert.Equal(t, 45, *got.EstimatedMinutes)
	require.NotNil(t, got.DeadlineAt)
	assert.True(t, deadline.Equal(*got.DeadlineAt))
	assert.Equal(t, domain.TaskTodo, got.Status)
}

func TestTaskRepo_ListOpenExcludesArchived(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, database, "u1")
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	open := testutil.NewTestTask(userID, "open")
	archived := testutil.NewTestTask(userID, "archived")
	require.NoError(t, repo.Create(ctx, open))
	require.NoError(t, repo.Create(ctx, archived))
	require.NoError(t, repo.Archive(ctx, userID, archived.ID))

	tasks, err := repo.ListOpen(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, open.ID, tasks[0].ID)
}

func TestTaskRepo_ListOpenOrdersDeadlineFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, database, "u1")
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	now := time.Now().UTC()
	noDeadline := testutil.NewTestTask(userID, "whenever")
	soon := testutil.NewTestTask(userID, "soon", testutil.WithDeadline(now.Add(2*time.Hour)))
	later := testutil.NewTestTask(userID, "later", testutil.WithDeadline(now.Add(72*time.Hour)))
	require.NoError(t, repo.Create(ctx, noDeadline))
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, soon))

	tasks, err := repo.ListOpen(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, soon.ID, tasks[0].ID)
	assert.Equal(t, later.ID, tasks[1].ID)
	assert.Equal(t, noDeadline.ID, tasks[2].ID, "no deadline sorts last")
}

func TestTaskRepo_ListOpenWithGoals(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, database, "u1")
	tasks := repository.NewSQLiteTaskRepo(database)
	goals := repository.NewSQLiteGoalRepo(database)
	ctx := context.Background()

	goal := testutil.NewTestGoal(userID, "Learn woodworking")
	require.NoError(t, goals.Create(ctx, goal))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(userID, "Buy chisels", testutil.WithGoal(goal.ID))))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(userID, "Standalone")))

	got, err := tasks.ListOpenWithGoals(ctx, userID, 50)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byTitle := map[string]string{}
	for _, tw := range got {
		byTitle[tw.Task.Title] = tw.GoalTitle
	}
	assert.Equal(t, "Learn woodworking", byTitle["Buy chisels"])
	assert.Equal(t, "", byTitle["Standalone"])
}

func TestTaskRepo_ListOpenWithGoalsZeroLimitReturnsAll(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, database, "u1")
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(userID, "First")))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(userID, "Second")))

	got, err := tasks.ListOpenWithGoals(ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2, "zero limit means no limit")
}

func TestTaskRepo_ArchiveIsScoped(t *testing.T) {
	database := testutil.NewTestDB(t)
	owner := testutil.SeedUser(t, database, "owner")
	other := testutil.SeedUser(t, database, "other")
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	task := testutil.NewTestTask(owner, "mine")
	require.NoError(t, repo.Create(ctx, task))

	assert.ErrorIs(t, repo.Archive(ctx, other, task.ID), repository.ErrNotFound)
}
