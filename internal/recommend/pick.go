package recommend

import (
	"sort"
	"strings"
	"time"

	"github.com/amreid/nextup/internal/domain"
)

// bandOrder is the direct-pick precedence: a best-band task wins over a
// higher-scored good-band task. Over-band tasks are only reachable through
// the global fallback.
var bandOrder = []Band{BandBest, BandGood, BandOK, BandShort}

// ScoreCandidates applies the time-reasonable pre-filter (falling back to the
// full set when the filter empties it), scores every candidate, and returns
// them sorted by descending score. The sort is stable, so ties keep the input
// order and the result is deterministic for identical input ordering.
func ScoreCandidates(tasks []domain.Task, rctx Context, now time.Time) []Scored {
	if len(tasks) == 0 {
		return nil
	}

	toScore := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if timeReasonable(t, rctx.TimeMinutes) {
			toScore = append(toScore, t)
		}
	}
	if len(toScore) == 0 {
		toScore = tasks
	}

	scored := make([]Scored, 0, len(toScore))
	for _, t := range toScore {
		scored = append(scored, ScoreTask(t, rctx, now))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// ExcludeTask drops the given task id from a scored list, unless it is the
// only candidate left.
func ExcludeTask(scored []Scored, excludeID string) []Scored {
	if excludeID == "" || len(scored) <= 1 {
		return scored
	}
	out := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Task.ID != excludeID {
			out = append(out, s)
		}
	}
	return out
}

// PickDirect walks bands in precedence order and returns the first (highest
// scored, since input is pre-sorted) task in each band in turn. When no task
// lands in any listed band, it falls back to the globally highest-scored
// candidate. Returns nil for an empty candidate set.
func PickDirect(scored []Scored, contextTimeMinutes int) *Scored {
	for _, band := range bandOrder {
		for i := range scored {
			if BandFor(estimateOrDefault(scored[i].Task), contextTimeMinutes) == band {
				return &scored[i]
			}
		}
	}
	if len(scored) == 0 {
		return nil
	}
	return &scored[0]
}

// Explain builds the short human explanation for a direct pick.
func Explain(pick Scored, rctx Context, now time.Time) string {
	var reasons []string

	if pick.Task.DeadlineAt != nil && pick.Task.DeadlineAt.Sub(now).Hours() < 24 {
		reasons = append(reasons, "due soon")
	}
	if pick.Task.Priority != nil && *pick.Task.Priority >= 4 {
		reasons = append(reasons, "high priority")
	}
	band := BandFor(estimateOrDefault(pick.Task), rctx.TimeMinutes)
	if band == BandBest || band == BandGood {
		reasons = append(reasons, "fits your available time")
	}
	if rctx.Energy == domain.EnergyLow && pick.Task.EstimatedMinutes != nil && *pick.Task.EstimatedMinutes <= 30 {
		reasons = append(reasons, "quick task for low energy")
	}

	if len(reasons) == 0 {
		return "Recommended based on your priorities and context."
	}
	return "Recommended because it's " + strings.Join(reasons, ", ") + "."
}
