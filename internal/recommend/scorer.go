// Package recommend implements the deterministic scoring engine: explainable
// additive scoring of a user's open tasks against a time/energy/urgency
// context, shortlist construction for the LLM ranking path, and the
// band-precedence direct pick.
package recommend

import (
	"time"

	"github.com/amreid/nextup/internal/domain"
)

// DefaultEstimateMinutes is assumed when a task has no estimate, for the
// time-fit band and the time-reasonable filter only.
const DefaultEstimateMinutes = 30

// Band buckets how well a task's estimated duration matches available time.
type Band string

const (
	BandBest  Band = "best"  // 70-100% of available time
	BandGood  Band = "good"  // 50-70%
	BandOK    Band = "ok"    // 30-50%
	BandShort Band = "short" // under 30%
	BandOver  Band = "over"  // exceeds available time
)

// BandFor computes the time-fit band for an estimate against available time.
func BandFor(estimatedMinutes, contextTimeMinutes int) Band {
	if contextTimeMinutes <= 0 {
		return BandOK
	}
	ratio := float64(estimatedMinutes) / float64(contextTimeMinutes)
	switch {
	case ratio > 1:
		return BandOver
	case ratio >= 0.7:
		return BandBest
	case ratio >= 0.5:
		return BandGood
	case ratio >= 0.3:
		return BandOK
	default:
		return BandShort
	}
}

// Context is the ephemeral per-request input to the deterministic path.
type Context struct {
	TimeMinutes int
	Energy      domain.Energy
	Urgency     domain.Urgency
}

type ReasonCode string

const (
	ReasonDeadlinePressure ReasonCode = "deadline_pressure"
	ReasonPriority         ReasonCode = "priority"
	ReasonTaskUrgency      ReasonCode = "task_urgency"
	ReasonTimeFit          ReasonCode = "time_fit"
	ReasonEnergyFit        ReasonCode = "energy_fit"
	ReasonUrgencyMatch     ReasonCode = "urgency_match"
)

// Reason is one scoring factor's contribution, kept for explanations.
type Reason struct {
	Code        ReasonCode
	Message     string
	WeightDelta float64
}

// Scored pairs a task with its score, band, and contributing reasons.
type Scored struct {
	Task    domain.Task
	Score   float64
	Band    Band
	Reasons []Reason
}

// ScoreTask scores one task against the context.
func ScoreTask(task domain.Task, rctx Context, now time.Time) Scored {
	result := Scored{
		Task: task,
		Band: BandFor(estimateOrDefault(task), rctx.TimeMinutes),
	}

	factors := []func(domain.Task, Context, time.Time) (float64, *Reason){
		scoreDeadlinePressure,
		scorePriority,
		scoreTaskUrgency,
		scoreTimeFit,
		scoreEnergyFit,
		scoreUrgencyMatch,
	}
	for _, f := range factors {
		delta, reason := f(task, rctx, now)
		result.Score += delta
		if reason != nil {
			result.Reasons = append(result.Reasons, *reason)
		}
	}
	return result
}

func scoreDeadlinePressure(task domain.Task, _ Context, now time.Time) (float64, *Reason) {
	if task.DeadlineAt == nil {
		return 0, nil
	}
	hoursUntil := task.DeadlineAt.Sub(now).Hours()
	var delta float64
	var msg string
	switch {
	case hoursUntil < 0:
		delta, msg = 50, "Past due"
	case hoursUntil < 24:
		delta, msg = 40, "Due within a day"
	case hoursUntil < 48:
		delta, msg = 30, "Due within two days"
	case hoursUntil < 168:
		delta, msg = 20, "Due this week"
	default:
		delta, msg = 10, "Has a deadline"
	}
	return delta, &Reason{Code: ReasonDeadlinePressure, Message: msg, WeightDelta: delta}
}

func scorePriority(task domain.Task, _ Context, _ time.Time) (float64, *Reason) {
	if task.Priority == nil {
		return 0, nil
	}
	delta := float64(*task.Priority) * 5
	return delta, &Reason{Code: ReasonPriority, Message: "User-set priority", WeightDelta: delta}
}

func scoreTaskUrgency(task domain.Task, _ Context, _ time.Time) (float64, *Reason) {
	if task.Urgency == nil {
		return 0, nil
	}
	delta := float64(*task.Urgency) * 5
	return delta, &Reason{Code: ReasonTaskUrgency, Message: "User-set urgency", WeightDelta: delta}
}

func scoreTimeFit(task domain.Task, rctx Context, _ time.Time) (float64, *Reason) {
	band := BandFor(estimateOrDefault(task), rctx.TimeMinutes)
	var delta float64
	var msg string
	switch band {
	case BandBest:
		delta, msg = 35, "Uses most of the available time"
	case BandGood:
		delta, msg = 20, "Good fit for the available time"
	case BandOK:
		delta, msg = 8, "Fits the available time"
	case BandShort:
		return 0, nil
	case BandOver:
		delta, msg = -15, "Longer than the available time"
	}
	return delta, &Reason{Code: ReasonTimeFit, Message: msg, WeightDelta: delta}
}

// scoreEnergyFit rewards short tasks on low energy and long tasks on high
// energy. Only applies when the task carries an explicit estimate.
func scoreEnergyFit(task domain.Task, rctx Context, _ time.Time) (float64, *Reason) {
	if task.EstimatedMinutes == nil {
		return 0, nil
	}
	est := *task.EstimatedMinutes
	switch rctx.Energy {
	case domain.EnergyLow:
		if est <= 30 {
			return 15, &Reason{Code: ReasonEnergyFit, Message: "Quick task for low energy", WeightDelta: 15}
		}
		if est > 60 {
			return -5, &Reason{Code: ReasonEnergyFit, Message: "Long task on low energy", WeightDelta: -5}
		}
	case domain.EnergyHigh:
		if est >= 60 {
			return 10, &Reason{Code: ReasonEnergyFit, Message: "Substantial task for high energy", WeightDelta: 10}
		}
	}
	return 0, nil
}

func scoreUrgencyMatch(task domain.Task, rctx Context, _ time.Time) (float64, *Reason) {
	if rctx.Urgency == domain.UrgencyHigh && task.Urgency != nil && *task.Urgency >= 4 {
		return 15, &Reason{Code: ReasonUrgencyMatch, Message: "Urgent task in an urgent moment", WeightDelta: 15}
	}
	return 0, nil
}

// timeReasonable reports whether the estimate falls in [30%, 105%] of the
// available time. Missing estimates use the default.
func timeReasonable(task domain.Task, contextTimeMinutes int) bool {
	est := float64(estimateOrDefault(task))
	min := float64(contextTimeMinutes) * 0.3
	max := float64(contextTimeMinutes) * 1.05
	return est >= min && est <= max
}

func estimateOrDefault(task domain.Task) int {
	return domain.IntFromPtrWithDefault(DefaultEstimateMinutes, task.EstimatedMinutes)
}
