package service_test

import (
	"context"
	"testing"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/service"
	"github.com/amreid/nextup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestTaskService_CreateParsesEstimateText(t *testing.T) {
	r := newRepos(t)
	userID := testutil.SeedUser(t, r.db, "u1")
	svc := service.NewTaskService(r.tasks, r.goals, nil)
	ctx := context.Background()

	view, err := svc.Create(ctx, userID, contract.TaskInput{
		Title:          "Deep clean the garage",
		EstimatedInput: "1.5h",
		Priority:       intp(2),
	})
	require.NoError(t, err)
	require.NotNil(t, view.EstimatedMinutes)
	assert.Equal(t, 90, *view.EstimatedMinutes)
	assert.Equal(t, "1.5h", view.EstimatedInput)

	stored, err := r.tasks.GetByID(ctx, userID, view.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EstimatedMinutes)
	assert.Equal(t, 90, *stored.EstimatedMinutes)
}

func TestTaskService_CreateRejectsInvalid(t *testing.T) {
	r := newRepos(t)
	userID := testutil.SeedUser(t, r.db, "u1")
	svc := service.NewTaskService(r.tasks, r.goals, nil)

	_, err := svc.Create(context.Background(), userID, contract.TaskInput{Title: "", Priority: intp(9)})
	cerr := requireContractError(t, err, contract.ErrInvalidBody)
	assert.Contains(t, cerr.Fields, "title")
	assert.Contains(t, cerr.Fields, "priority")
}

func TestTaskService_CreateRejectsUnknownGoal(t *testing.T) {
	r := newRepos(t)
	userID := testutil.SeedUser(t, r.db, "u1")
	svc := service.NewTaskService(r.tasks, r.goals, nil)

	goalID := "missing-goal"
	_, err := svc.Create(context.Background(), userID, contract.TaskInput{Title: "x", GoalID: &goalID})
	cerr := requireContractError(t, err, contract.ErrInvalidBody)
	assert.Contains(t, cerr.Fields, "goalId")
}

func TestTaskService_UpdatePreservesStatusAndCreatedAt(t *testing.T) {
	r := newRepos(t)
	userID := testutil.SeedUser(t, r.db, "u1")
	svc := service.NewTaskService(r.tasks, r.goals, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, contract.TaskInput{Title: "Before"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userID, created.ID, contract.TaskInput{
		Title:            "After",
		EstimatedMinutes: intp(25),
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "todo", updated.Status)
}

func TestTaskService_ArchiveThenList(t *testing.T) {
	r := newRepos(t)
	userID := testutil.SeedUser(t, r.db, "u1")
	svc := service.NewTaskService(r.tasks, r.goals, nil)
	ctx := context.Background()

	keep, err := svc.Create(ctx, userID, contract.TaskInput{Title: "Keep"})
	require.NoError(t, err)
	gone, err := svc.Create(ctx, userID, contract.TaskInput{Title: "Gone"})
	require.NoError(t, err)

	require.NoError(t, svc.Archive(ctx, userID, gone.ID))

	views, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, keep.ID, views[0].ID)

	err = svc.Archive(ctx, userID, "missing")
	requireContractError(t, err, contract.ErrNotFound)
}

func TestGoalService_CRUD(t *testing.T) {
	r := newRepos(t)
	userID := testutil.SeedUser(t, r.db, "u1")
	svc := service.NewGoalService(r.goals, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, contract.GoalInput{Title: "Learn Spanish"})
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)

	updated, err := svc.Update(ctx, userID, created.ID, contract.GoalInput{Title: "Learn Portuguese"})
	require.NoError(t, err)
	assert.Equal(t, "Learn Portuguese", updated.Title)

	require.NoError(t, svc.Archive(ctx, userID, created.ID))
	views, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, views)
}
