package service

import (
	"context"
	"strings"
	"time"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/repository"
	"github.com/google/uuid"
)

type GoalService struct {
	goals    repository.GoalRepo
	observer UseCaseObserver
}

func NewGoalService(goals repository.GoalRepo, observer UseCaseObserver) *GoalService {
	return &GoalService{goals: goals, observer: observerOrNoop(observer)}
}

func (s *GoalService) List(ctx context.Context, userID string) ([]contract.GoalView, error) {
	rows, err := s.goals.List(ctx, userID, false)
	if err != nil {
		return nil, contract.NewError(contract.ErrInternal, "could not list goals")
	}
	views := make([]contract.GoalView, 0, len(rows))
	for _, g := range rows {
		views = append(views, contract.NewGoalView(g))
	}
	return views, nil
}

func (s *GoalService) Create(ctx context.Context, userID string, in contract.GoalInput) (*contract.GoalView, error) {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "goal_create", start, err, nil) }()

	if fields := in.Validate(); fields != nil {
		err = contract.NewValidationError(fields)
		return nil, err
	}

	now := time.Now().UTC()
	goal := &domain.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Notes:     in.Notes,
		Status:    domain.GoalActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if createErr := s.goals.Create(ctx, goal); createErr != nil {
		err = contract.NewError(contract.ErrInternal, "could not create goal")
		return nil, err
	}
	view := contract.NewGoalView(*goal)
	return &view, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id string, in contract.GoalInput) (*contract.GoalView, error) {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "goal_update", start, err, nil) }()

	if fields := in.Validate(); fields != nil {
		err = contract.NewValidationError(fields)
		return nil, err
	}

	goal, getErr := s.goals.GetByID(ctx, userID, id)
	if getErr != nil {
		err = mapRepoErr(getErr, "Goal not found")
		return nil, err
	}

	goal.Title = strings.TrimSpace(in.Title)
	goal.Notes = in.Notes
	goal.UpdatedAt = time.Now().UTC()
	if updErr := s.goals.Update(ctx, goal); updErr != nil {
		err = mapRepoErr(updErr, "Goal not found")
		return nil, err
	}
	view := contract.NewGoalView(*goal)
	return &view, nil
}

func (s *GoalService) Archive(ctx context.Context, userID, id string) error {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "goal_archive", start, err, nil) }()

	if archErr := s.goals.Archive(ctx, userID, id); archErr != nil {
		err = mapRepoErr(archErr, "Goal not found")
		return err
	}
	return nil
}
