package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amreid/nextup/internal/domain"
)

var (
	// ErrNotFound indicates the row does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyDecided indicates a suggestion whose decision already left
	// pending. The decision transition happens at most once.
	ErrAlreadyDecided = errors.New("suggestion already decided")
)

// TaskWithGoal is a joined view of a task with its goal's title, used when
// building interest summaries for LLM prompts.
type TaskWithGoal struct {
	Task      domain.Task
	GoalTitle string
}

type UserRepo interface {
	Create(ctx context.Context, id, email string) error
	Exists(ctx context.Context, id string) (bool, error)
	MarkOnboardingComplete(ctx context.Context, id string) error
	OnboardingCompleted(ctx context.Context, id string) (bool, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	ListOpen(ctx context.Context, userID string) ([]domain.Task, error)
	ListOpenWithGoals(ctx context.Context, userID string, limit int) ([]TaskWithGoal, error)
	Update(ctx context.Context, t *domain.Task) error
	Archive(ctx context.Context, userID, id string) error
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, userID, id string) (*domain.Goal, error)
	List(ctx context.Context, userID string, includeArchived bool) ([]domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Archive(ctx context.Context, userID, id string) error
}

type InterestRepo interface {
	List(ctx context.Context, userID string) ([]domain.Interest, error)
	// Replace swaps the user's interest set atomically.
	Replace(ctx context.Context, userID string, labels []string) error
}

type SuggestionRepo interface {
	Create(ctx context.Context, s *domain.GeneratedSuggestion) error
	GetByID(ctx context.Context, userID, id string) (*domain.GeneratedSuggestion, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.GeneratedSuggestion, error)
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error)

	// Accept creates the spawned task and marks the suggestion accepted in one
	// transaction. Fails with ErrNotFound / ErrAlreadyDecided unless the
	// suggestion exists, belongs to the user, and is still pending.
	Accept(ctx context.Context, userID, id string, spawned *domain.Task) error

	// Skip marks the suggestion skipped under the same pending-only guard.
	Skip(ctx context.Context, userID, id string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.RecommendationEvent) error
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.RecommendationEvent, error)
	SetDecision(ctx context.Context, userID, id string, decision domain.Decision) error
}

type BudgetRepo interface {
	// IncrementAndGet atomically increments the user's counter for the given
	// UTC day and returns the new count. Safe under concurrent callers.
	IncrementAndGet(ctx context.Context, userID string, day string) (int, error)

	// Get returns the counter for the given UTC day (0 when absent).
	Get(ctx context.Context, userID string, day string) (int, error)
}
