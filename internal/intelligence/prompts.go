package intelligence

import (
	"fmt"
	"strings"

	"github.com/amreid/nextup/internal/recommend"
)

const suggestSystemPrompt = `You suggest ONE new, concrete next action. You do NOT choose from an existing list. Output valid JSON only.`

func buildSuggestUserPrompt(in SuggestInput, avoid []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Context: available time = %d minutes; energy = %s; uniqueness preference = %s.",
		in.TimeMinutes, in.Energy, in.Uniqueness)

	if hint := strings.TrimSpace(in.IdeaHint); hint != "" {
		fmt.Fprintf(&b, "\n\nUser preference hint (soft constraint): %q. Prefer tasks that match this hint when possible, but do not force it if it conflicts with time, energy, or uniqueness requirements.", hint)
	}

	fmt.Fprintf(&b, "\n\nThe suggestion MUST fit within the user's available time (%d min). Prefer estimatedMinutes that use most of this window (e.g. 70-100%%) when it makes sense; only suggest a short task (e.g. 25 min) if the user has 5 hours when a longer, fitting action is clearly better.", in.TimeMinutes)

	fmt.Fprintf(&b, "\n\nInterests (from user's goals/tasks, themes only): %s", in.InterestsSummary)
	fmt.Fprintf(&b, "\n\nRecent behavior (counts only): %s", in.BehaviorSummary)

	if len(avoid) > 0 {
		b.WriteString("\n\nIMPORTANT: Your suggestion MUST be clearly different from these (do not suggest the same or very similar action):\n")
		for _, t := range avoid {
			fmt.Fprintf(&b, "- %s\n", t)
		}
		b.WriteString("Suggest something new that is not listed above.")
	}

	b.WriteString(`

Uniqueness requirement:
- If "familiar": Suggest a task that closely aligns with patterns from previously accepted/completed tasks. It should feel like the same kind of work the user has done before, using similar skills and approaches.
- If "related": Suggest a task that is adjacent to existing interests/projects but not a direct repeat. It should explore similar themes or domains but introduce a slight variation or new angle.
- If "novel": Suggest a genuinely new skill/domain that the user hasn't tried before, while still aligning with their interests and fitting the time/energy constraints. This should feel like exploring something completely different.`)

	fmt.Fprintf(&b, "\n\nOutput JSON only, no markdown:\n"+
		`{"type":"generated","generatedTask":{"title":"...","nextAction":"...","estimatedMinutes":N,"tags":["..."],"reasoning":"...","confidence":"low|med|high"},"model":"...","meta":{"sourceFeatures":["interest","recentProjects","recentAcceptedActionsSummary"],"shortlistHash":"..."}}`)

	fmt.Fprintf(&b, "\n\nRules: title = one short actionable sentence. nextAction = single step of at most %d characters. estimatedMinutes must be <= %d and should match the suggested action length. tags = 0-%d. reasoning = 1-2 sentences. The suggestion MUST match the uniqueness preference: %s. shortlistHash = \"\" or any short id.",
		nextActionMaxLen, in.TimeMinutes, maxTags, in.Uniqueness)

	return b.String()
}

const rankSystemPrompt = `You are a calm, focused assistant helping the user choose a single next action from their task list.`

func buildRankUserPrompt(in RankInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Context:\n- Available time: %d minutes\n- Energy level: %s\n- Urgency: %s",
		in.TimeMinutes, in.Energy, in.Urgency)

	fmt.Fprintf(&b, "\n\nThe user's tasks overall (reflects their interests and what they care about):\n%s", in.InterestsSummary)
	fmt.Fprintf(&b, "\n\nRecent activity (for context only): %s", in.BehaviorSummary)

	b.WriteString("\n\nCandidates to choose from (top of list are pre-ranked by relevance; pick one that fits both context AND the user's interests above):\n")
	for _, item := range in.Shortlist {
		b.WriteString(shortlistLine(item))
		b.WriteByte('\n')
	}

	b.WriteString(`
Choose exactly ONE task that fits the user's current context and aligns with their interests (themes from their task list). Prefer variety when several tasks match: if they have many similar tasks, picking one that's related but a bit different can keep things fresh while still matching what they care about. Respond with a JSON object only (no markdown, no explanation outside JSON) with these exact keys:
- recommendedTaskId (string, one of the task ids above)
- recommendedNextActionText (string, the task title or a one-line next action)
- explanation (string, 1-3 sentences why this task fits now and how it matches their interests)
- confidence ("low" | "med" | "high")`)

	return b.String()
}

func shortlistLine(item recommend.ShortlistItem) string {
	est := "?"
	if item.EstimatedMinutes != nil {
		est = fmt.Sprintf("%d", *item.EstimatedMinutes)
	}
	prio := "?"
	if item.Priority != nil {
		prio = fmt.Sprintf("%d", *item.Priority)
	}
	urg := "?"
	if item.Urgency != nil {
		urg = fmt.Sprintf("%d", *item.Urgency)
	}
	deadline := "none"
	if item.DeadlineAt != nil {
		deadline = *item.DeadlineAt
	}
	return fmt.Sprintf("- id: %s | title: %s | notes: %s | estMin: %s | priority: %s | urgency: %s | deadline: %s",
		item.ID, item.Title, item.Notes, est, prio, urg, deadline)
}
