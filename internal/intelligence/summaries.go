package intelligence

import (
	"fmt"
	"strings"

	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/repository"
)

const (
	maxInterestLabels = 20
	maxTaskThemes     = 10
)

// noInterestsSummary steers the model toward safe, broad ideas when the
// user never set up interests.
const noInterestsSummary = "Interests: not set. Use safe default themes: small project progress, quick life admin, learning. Suggest a broad, low-risk next action. If relevant, you may mention that adding interests in the app will improve suggestions."

// BuildInterestsSummary condenses the user's interests and open tasks into
// a themes-only line for prompts. Task titles are included because they are
// the strongest available signal of what the user cares about; notes and
// other free text stay out of the prompt.
func BuildInterestsSummary(interests []domain.Interest, openTasks []repository.TaskWithGoal) string {
	themes := make([]string, 0, maxTaskThemes)
	for _, tw := range openTasks {
		if len(themes) == maxTaskThemes {
			break
		}
		if tw.GoalTitle != "" {
			themes = append(themes, fmt.Sprintf("%s (%s)", tw.Task.Title, tw.GoalTitle))
		} else {
			themes = append(themes, tw.Task.Title)
		}
	}
	themesText := ""
	if len(themes) > 0 {
		themesText = fmt.Sprintf(" Recent task themes: %s.", strings.Join(themes, "; "))
	}

	if len(interests) == 0 {
		return noInterestsSummary + themesText
	}

	labels := make([]string, 0, maxInterestLabels)
	for _, in := range interests {
		if len(labels) == maxInterestLabels {
			break
		}
		labels = append(labels, in.Label)
	}
	return fmt.Sprintf("interests: [%s].%s", strings.Join(labels, ", "), themesText)
}

// BuildBehaviorSummary reduces recent decisions to accept/skip counts.
// Deliberately counts only, so no task content leaks into this line.
func BuildBehaviorSummary(recentEvents []domain.RecommendationEvent, recentGenerated []domain.GeneratedSuggestion) string {
	var accepted, skipped, genAccepted, genSkipped int
	for _, e := range recentEvents {
		switch e.Decision {
		case domain.DecisionAccepted:
			accepted++
		case domain.DecisionSkipped:
			skipped++
		}
	}
	for _, s := range recentGenerated {
		switch s.Decision {
		case domain.DecisionAccepted:
			genAccepted++
		case domain.DecisionSkipped:
			genSkipped++
		}
	}
	return fmt.Sprintf("Last %d (existing recs): %d accepted, %d skipped. Last %d (generated): %d accepted, %d skipped. No task titles.",
		len(recentEvents), accepted, skipped, len(recentGenerated), genAccepted, genSkipped)
}

// BuildReferenceTexts collects the texts a new suggestion must not repeat:
// open task titles plus the title and next action of recent suggestions.
func BuildReferenceTexts(taskTitles []string, recentSuggestions []domain.GeneratedSuggestion) []string {
	refs := make([]string, 0, len(taskTitles)+2*len(recentSuggestions))
	for _, title := range taskTitles {
		if title != "" {
			refs = append(refs, title)
		}
	}
	for _, s := range recentSuggestions {
		if s.Title != "" {
			refs = append(refs, s.Title)
		}
		if s.NextAction != "" {
			refs = append(refs, s.NextAction)
		}
	}
	return refs
}
