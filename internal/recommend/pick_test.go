package recommend

import (
	"strings"
	"testing"
	"time"

	"github.com/amreid/nextup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickDirect_BandPrecedenceOverScore(t *testing.T) {
	// A good-band task with score 100 loses to a best-band task with score 10.
	goodBand := Scored{Task: task("good", withEstimate(35)), Score: 100}
	bestBand := Scored{Task: task("best", withEstimate(55)), Score: 10}

	pick := PickDirect([]Scored{goodBand, bestBand}, 60)
	require.NotNil(t, pick)
	assert.Equal(t, "task-best", pick.Task.ID)
}

func TestPickDirect_WithinBandUsesSortedOrder(t *testing.T) {
	// Both in best band; the list is pre-sorted descending, first wins.
	high := Scored{Task: task("high", withEstimate(50)), Score: 80}
	low := Scored{Task: task("low", withEstimate(55)), Score: 20}

	pick := PickDirect([]Scored{high, low}, 60)
	require.NotNil(t, pick)
	assert.Equal(t, "task-high", pick.Task.ID)
}

func TestPickDirect_FallsBackToTopScoreWhenAllOver(t *testing.T) {
	// No task in any listed band (all over): globally highest-scored wins.
	a := Scored{Task: task("a", withEstimate(200)), Score: 40}
	b := Scored{Task: task("b", withEstimate(300)), Score: 10}

	pick := PickDirect([]Scored{a, b}, 60)
	require.NotNil(t, pick)
	assert.Equal(t, "task-a", pick.Task.ID)
}

func TestPickDirect_Empty(t *testing.T) {
	assert.Nil(t, PickDirect(nil, 60))
}

func TestExcludeTask(t *testing.T) {
	a := Scored{Task: task("a", withEstimate(45))}
	b := Scored{Task: task("b", withEstimate(45))}

	out := ExcludeTask([]Scored{a, b}, "task-a")
	require.Len(t, out, 1)
	assert.Equal(t, "task-b", out[0].Task.ID)

	// Sole candidate is never excluded.
	out = ExcludeTask([]Scored{a}, "task-a")
	require.Len(t, out, 1)
}

func TestExplain_Reasons(t *testing.T) {
	now := time.Now().UTC()
	rctx := Context{TimeMinutes: 60, Energy: domain.EnergyLow, Urgency: domain.UrgencyMed}

	pick := ScoreTask(task("t",
		withEstimate(30),
		withPriority(5),
		withDeadline(now.Add(2*time.Hour)),
	), rctx, now)

	explanation := Explain(pick, rctx, now)
	assert.True(t, strings.HasPrefix(explanation, "Recommended because it's "))
	assert.Contains(t, explanation, "due soon")
	assert.Contains(t, explanation, "high priority")
	assert.Contains(t, explanation, "quick task for low energy")
}

func TestExplain_Default(t *testing.T) {
	now := time.Now().UTC()
	rctx := Context{TimeMinutes: 60, Energy: domain.EnergyMed, Urgency: domain.UrgencyMed}

	pick := ScoreTask(task("plain", withEstimate(15)), rctx, now)
	assert.Equal(t, "Recommended based on your priorities and context.", Explain(pick, rctx, now))
}

func TestBuildShortlist_TruncatesNotesAndSerializesDeadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	longNotes := strings.Repeat("x", 200)

	tk := task("noted", withEstimate(45), withDeadline(now))
	tk.Notes = longNotes

	items := BuildShortlist([]Scored{{Task: tk}}, 30, "")
	require.Len(t, items, 1)
	assert.Equal(t, strings.Repeat("x", 150)+"…", items[0].Notes)
	require.NotNil(t, items[0].DeadlineAt)
	assert.Equal(t, "2026-03-01T12:00:00Z", *items[0].DeadlineAt)
}

func TestBuildShortlist_CapsAtN(t *testing.T) {
	var scored []Scored
	for i := 0; i < 40; i++ {
		scored = append(scored, Scored{Task: task(strings.Repeat("a", i+1), withEstimate(45))})
	}
	items := BuildShortlist(scored, 30, "")
	assert.Len(t, items, 30)
}

func TestBuildShortlist_ExcludeNeverEmpties(t *testing.T) {
	only := Scored{Task: task("only", withEstimate(45))}
	items := BuildShortlist([]Scored{only}, 30, "task-only")
	require.Len(t, items, 1, "sole candidate survives exclusion")
}
