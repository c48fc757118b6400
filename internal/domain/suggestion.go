package domain

import "time"

// GeneratedSuggestion is a persisted record of one generative-path output.
// Created with Decision = pending immediately after a successful generation;
// mutated exactly once when the user accepts (spawning a task) or skips.
type GeneratedSuggestion struct {
	ID     string
	UserID string

	// Context snapshot at generation time.
	ContextTimeMinutes int
	ContextEnergy      Energy
	ContextUrgency     Urgency
	ContextUniqueness  Uniqueness

	Title            string
	NextAction       string // single concrete step, <=120 chars
	EstimatedMinutes int
	Tags             []string
	Reasoning        string
	Confidence       Confidence

	Model          string
	SourceFeatures []string
	ShortlistHash  string

	Decision      Decision
	CreatedTaskID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecommendationEvent is an append-only record of one deterministic-path
// recommendation: the context it was computed for, the task chosen, and the
// user's eventual decision.
type RecommendationEvent struct {
	ID     string
	UserID string
	TaskID string

	ContextTimeMinutes int
	ContextEnergy      Energy
	ContextUrgency     Urgency

	Explanation string
	Confidence  Confidence
	Score       float64

	Decision Decision

	CreatedAt time.Time
}
