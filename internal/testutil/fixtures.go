package testutil

import (
	"time"

	"github.com/amreid/nextup/internal/domain"
	"github.com/google/uuid"
)

// Task options
type TaskOption func(*domain.Task)

func WithEstimate(minutes int) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedMinutes = &minutes
	}
}

func WithPriority(p int) TaskOption {
	return func(t *domain.Task) {
		t.Priority = &p
	}
}

func WithUrgency(u int) TaskOption {
	return func(t *domain.Task) {
		t.Urgency = &u
	}
}

func WithDeadline(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DeadlineAt = &d
	}
}

func WithNotes(notes string) TaskOption {
	return func(t *domain.Task) {
		t.Notes = notes
	}
}

func WithGoal(goalID string) TaskOption {
	return func(t *domain.Task) {
		t.GoalID = &goalID
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func NewTestTask(userID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Status:    domain.TaskTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestGoal(userID, title string) *domain.Goal {
	now := time.Now().UTC()
	return &domain.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Status:    domain.GoalActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Suggestion options
type SuggestionOption func(*domain.GeneratedSuggestion)

func WithSuggestionCreatedAt(ts time.Time) SuggestionOption {
	return func(s *domain.GeneratedSuggestion) {
		s.CreatedAt = ts
		s.UpdatedAt = ts
	}
}

func WithSuggestionDecision(d domain.Decision) SuggestionOption {
	return func(s *domain.GeneratedSuggestion) {
		s.Decision = d
	}
}

func WithSuggestionText(title, nextAction string) SuggestionOption {
	return func(s *domain.GeneratedSuggestion) {
		s.Title = title
		s.NextAction = nextAction
	}
}

func NewTestSuggestion(userID string, opts ...SuggestionOption) *domain.GeneratedSuggestion {
	now := time.Now().UTC()
	s := &domain.GeneratedSuggestion{
		ID:                 uuid.New().String(),
		UserID:             userID,
		ContextTimeMinutes: 60,
		ContextEnergy:      domain.EnergyMed,
		ContextUrgency:     domain.UrgencyMed,
		ContextUniqueness:  domain.UniquenessRelated,
		Title:              "Sketch a tiny side project",
		NextAction:         "Open a blank file and write the first ten lines",
		EstimatedMinutes:   45,
		Tags:               []string{"creative"},
		Reasoning:          "Fits the available hour and matches stated interests.",
		Confidence:         domain.ConfidenceMed,
		Model:              "test-model",
		Decision:           domain.DecisionPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestEvent(userID, taskID string) *domain.RecommendationEvent {
	return &domain.RecommendationEvent{
		ID:                 uuid.New().String(),
		UserID:             userID,
		TaskID:             taskID,
		ContextTimeMinutes: 60,
		ContextEnergy:      domain.EnergyMed,
		ContextUrgency:     domain.UrgencyMed,
		Explanation:        "Recommended based on your priorities and context.",
		Confidence:         domain.ConfidenceMed,
		Decision:           domain.DecisionPending,
		CreatedAt:          time.Now().UTC(),
	}
}
