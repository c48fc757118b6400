// Package quota enforces the per-user daily caps on model usage. Both caps
// reset at midnight UTC. The generative cap is derived from the number of
// suggestion rows written today, so there is no separate counter to drift
// out of sync. The ranking cap uses an atomic counter row because ranking
// calls leave no other durable trace.
package quota

import (
	"context"
	"time"

	"github.com/amreid/nextup/internal/repository"
)

const (
	// DailyGeneratedCap limits brand-new AI suggestions per user per day.
	DailyGeneratedCap = 5
	// DailyRankingCap limits AI ranking calls per user per day.
	DailyRankingCap = 10
)

const dayFormat = "2006-01-02"

// Tracker answers quota questions for a single point in time.
type Tracker struct {
	suggestions repository.SuggestionRepo
	budgets     repository.BudgetRepo
	now         func() time.Time
}

func NewTracker(suggestions repository.SuggestionRepo, budgets repository.BudgetRepo) *Tracker {
	return &Tracker{
		suggestions: suggestions,
		budgets:     budgets,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Tests use this to cross day boundaries.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// DayStart returns the current UTC midnight.
func (t *Tracker) DayStart() time.Time {
	n := t.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// RemainingGenerated reports how many new AI suggestions the user may still
// request today.
func (t *Tracker) RemainingGenerated(ctx context.Context, userID string) (int, error) {
	used, err := t.suggestions.CountCreatedSince(ctx, userID, t.DayStart())
	if err != nil {
		return 0, err
	}
	remaining := DailyGeneratedCap - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// CanUseGenerated reports whether the user has generative budget left today.
func (t *Tracker) CanUseGenerated(ctx context.Context, userID string) (bool, error) {
	remaining, err := t.RemainingGenerated(ctx, userID)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}

// CanUseRanking reports whether the user has ranking budget left today.
func (t *Tracker) CanUseRanking(ctx context.Context, userID string) (bool, error) {
	count, err := t.budgets.Get(ctx, userID, t.dayKey())
	if err != nil {
		return false, err
	}
	return count < DailyRankingCap, nil
}

// IncrementRanking records one successful ranking call. The increment is a
// single atomic upsert, so concurrent callers never lose counts. It is
// called only after the model answered, so a failed call costs nothing.
func (t *Tracker) IncrementRanking(ctx context.Context, userID string) error {
	_, err := t.budgets.IncrementAndGet(ctx, userID, t.dayKey())
	return err
}

// RemainingRanking reports how many ranking calls the user may still make today.
func (t *Tracker) RemainingRanking(ctx context.Context, userID string) (int, error) {
	count, err := t.budgets.Get(ctx, userID, t.dayKey())
	if err != nil {
		return 0, err
	}
	remaining := DailyRankingCap - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (t *Tracker) dayKey() string {
	return t.now().UTC().Format(dayFormat)
}
