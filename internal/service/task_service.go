package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/repository"
	"github.com/google/uuid"
)

// TaskService owns task CRUD. Archiving is the only way to remove a task
// and it is one-way.
type TaskService struct {
	tasks    repository.TaskRepo
	goals    repository.GoalRepo
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, goals repository.GoalRepo, observer UseCaseObserver) *TaskService {
	return &TaskService{tasks: tasks, goals: goals, observer: observerOrNoop(observer)}
}

// List returns all of the user's open tasks with goal titles.
func (s *TaskService) List(ctx context.Context, userID string) ([]contract.TaskView, error) {
	rows, err := s.tasks.ListOpenWithGoals(ctx, userID, 0)
	if err != nil {
		return nil, contract.NewError(contract.ErrInternal, "could not list tasks")
	}
	views := make([]contract.TaskView, 0, len(rows))
	for _, row := range rows {
		views = append(views, contract.NewTaskView(row.Task, row.GoalTitle))
	}
	return views, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, in contract.TaskInput) (*contract.TaskView, error) {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "task_create", start, err, nil) }()

	if fields := in.Validate(); fields != nil {
		err = contract.NewValidationError(fields)
		return nil, err
	}
	if err = s.checkGoal(ctx, userID, in.GoalID); err != nil {
		return nil, err
	}

	task := taskFromInput(userID, in)
	task.ID = uuid.New().String()
	task.Status = domain.TaskTodo
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if createErr := s.tasks.Create(ctx, task); createErr != nil {
		err = contract.NewError(contract.ErrInternal, "could not create task")
		return nil, err
	}
	view := contract.NewTaskView(*task, "")
	return &view, nil
}

func (s *TaskService) Update(ctx context.Context, userID, id string, in contract.TaskInput) (*contract.TaskView, error) {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "task_update", start, err, nil) }()

	if fields := in.Validate(); fields != nil {
		err = contract.NewValidationError(fields)
		return nil, err
	}
	if err = s.checkGoal(ctx, userID, in.GoalID); err != nil {
		return nil, err
	}

	existing, getErr := s.tasks.GetByID(ctx, userID, id)
	if getErr != nil {
		err = mapRepoErr(getErr, "Task not found")
		return nil, err
	}

	updated := taskFromInput(userID, in)
	updated.ID = existing.ID
	updated.Status = existing.Status
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if updErr := s.tasks.Update(ctx, updated); updErr != nil {
		err = mapRepoErr(updErr, "Task not found")
		return nil, err
	}
	view := contract.NewTaskView(*updated, "")
	return &view, nil
}

func (s *TaskService) Archive(ctx context.Context, userID, id string) error {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "task_archive", start, err, nil) }()

	if archErr := s.tasks.Archive(ctx, userID, id); archErr != nil {
		err = mapRepoErr(archErr, "Task not found")
		return err
	}
	return nil
}

func (s *TaskService) checkGoal(ctx context.Context, userID string, goalID *string) error {
	if goalID == nil || *goalID == "" {
		return nil
	}
	if _, err := s.goals.GetByID(ctx, userID, *goalID); err != nil {
		return contract.NewValidationError(map[string]string{"goalId": "Goal not found"})
	}
	return nil
}

func taskFromInput(userID string, in contract.TaskInput) *domain.Task {
	minutes, raw := in.ResolveEstimate()
	task := &domain.Task{
		UserID:           userID,
		Title:            strings.TrimSpace(in.Title),
		Notes:            in.Notes,
		EstimatedMinutes: minutes,
		EstimatedInput:   raw,
		Priority:         in.Priority,
		Urgency:          in.Urgency,
	}
	if in.GoalID != nil && *in.GoalID != "" {
		task.GoalID = in.GoalID
	}
	if in.DeadlineAt != nil {
		if ts, err := time.Parse(time.RFC3339, *in.DeadlineAt); err == nil {
			utc := ts.UTC()
			task.DeadlineAt = &utc
		}
	}
	return task
}

func mapRepoErr(err error, notFoundMsg string) *contract.Error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return contract.NewError(contract.ErrNotFound, notFoundMsg)
	case errors.Is(err, repository.ErrAlreadyDecided):
		return contract.NewError(contract.ErrNotFound, contract.SuggestionUsedMessage)
	default:
		return contract.NewError(contract.ErrInternal, "something went wrong")
	}
}
