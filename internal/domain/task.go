package domain

import "time"

type Task struct {
	ID     string
	UserID string
	GoalID *string

	Title string
	Notes string

	// EstimatedMinutes is nil when the user never gave an estimate.
	// EstimatedInput preserves the raw text the estimate was parsed from.
	EstimatedMinutes *int
	EstimatedInput   string

	Priority *int // 1-5
	Urgency  *int // 1-5

	DeadlineAt *time.Time
	Status     TaskStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Goal struct {
	ID     string
	UserID string

	Title string
	Notes string

	Status GoalStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interest is a free-text interest label chosen during onboarding.
type Interest struct {
	ID        string
	UserID    string
	Label     string
	CreatedAt time.Time
}
