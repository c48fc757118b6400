package intelligence

import (
	"fmt"
	"testing"

	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestBuildInterestsSummary_WithInterestsAndThemes(t *testing.T) {
	interests := []domain.Interest{{Label: "woodworking"}, {Label: "writing"}}
	tasks := []repository.TaskWithGoal{
		{Task: domain.Task{Title: "Sand the bench"}, GoalTitle: "Build a bench"},
		{Task: domain.Task{Title: "Draft chapter two"}},
	}

	got := BuildInterestsSummary(interests, tasks)

	assert.Contains(t, got, "interests: [woodworking, writing].")
	assert.Contains(t, got, "Sand the bench (Build a bench)")
	assert.Contains(t, got, "Draft chapter two")
}

func TestBuildInterestsSummary_NoInterests(t *testing.T) {
	got := BuildInterestsSummary(nil, nil)

	assert.Contains(t, got, "Interests: not set.")
	assert.Contains(t, got, "safe default themes")
	assert.NotContains(t, got, "Recent task themes")
}

func TestBuildInterestsSummary_CapsLists(t *testing.T) {
	var interests []domain.Interest
	for i := 0; i < 30; i++ {
		interests = append(interests, domain.Interest{Label: fmt.Sprintf("interest-%d", i)})
	}
	var tasks []repository.TaskWithGoal
	for i := 0; i < 15; i++ {
		tasks = append(tasks, repository.TaskWithGoal{Task: domain.Task{Title: fmt.Sprintf("task-%d", i)}})
	}

	got := BuildInterestsSummary(interests, tasks)

	assert.Contains(t, got, "interest-19")
	assert.NotContains(t, got, "interest-20")
	assert.Contains(t, got, "task-9")
	assert.NotContains(t, got, "task-10")
}

func TestBuildBehaviorSummary_CountsOnly(t *testing.T) {
	events := []domain.RecommendationEvent{
		{Decision: domain.DecisionAccepted, TaskID: "secret-task"},
		{Decision: domain.DecisionAccepted},
		{Decision: domain.DecisionSkipped},
		{Decision: domain.DecisionPending},
	}
	generated := []domain.GeneratedSuggestion{
		{Decision: domain.DecisionAccepted, Title: "secret idea"},
		{Decision: domain.DecisionSkipped},
	}

	got := BuildBehaviorSummary(events, generated)

	assert.Contains(t, got, "2 accepted, 1 skipped")
	assert.Contains(t, got, "1 accepted, 1 skipped")
	assert.Contains(t, got, "No task titles.")
	assert.NotContains(t, got, "secret")
}

func TestBuildReferenceTexts(t *testing.T) {
	suggestions := []domain.GeneratedSuggestion{
		{Title: "Plan a hike", NextAction: "Pick a trail"},
		{Title: "", NextAction: "Just the action"},
	}

	got := BuildReferenceTexts([]string{"File taxes", ""}, suggestions)

	assert.Equal(t, []string{"File taxes", "Plan a hike", "Pick a trail", "Just the action"}, got)
}
