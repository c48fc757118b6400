package contract

import (
	"strings"
	"time"

	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/timeparse"
)

const maxIdeaHintLen = 500

// SuggestRequest asks for one brand-new AI-generated task idea. Time may
// arrive as minutes or as free text like "45m" or "2h"; text wins.
type SuggestRequest struct {
	TimeMinutes *int   `json:"timeMinutes,omitempty"`
	TimeInput   string `json:"timeInput,omitempty"`
	Energy      string `json:"energy"`
	Uniqueness  string `json:"uniqueness"`
	IdeaHint    string `json:"ideaHint,omitempty"`
}

func (r SuggestRequest) Validate() map[string]string {
	fields := map[string]string{}
	if !domain.ValidEnergies[r.Energy] {
		fields["energy"] = "Energy must be low, med, or high"
	}
	if !domain.ValidUniqueness[r.Uniqueness] {
		fields["uniqueness"] = "Uniqueness must be familiar, related, or novel"
	}
	if len([]rune(r.IdeaHint)) > maxIdeaHintLen {
		fields["ideaHint"] = "Hint must be at most 500 characters"
	}
	if _, ok := resolveTime(r.TimeMinutes, r.TimeInput); !ok {
		fields["time"] = "Provide timeMinutes or valid timeInput (e.g. 45m, 2h, 1d)"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ResolveTimeMinutes returns the effective available-time window.
func (r SuggestRequest) ResolveTimeMinutes() (int, bool) {
	return resolveTime(r.TimeMinutes, r.TimeInput)
}

// NextRequest asks for the best existing task for the current context.
type NextRequest struct {
	TimeMinutes   *int   `json:"timeMinutes,omitempty"`
	TimeInput     string `json:"timeInput,omitempty"`
	Energy        string `json:"energy"`
	Urgency       string `json:"urgency"`
	ExcludeTaskID string `json:"excludeTaskId,omitempty"`
}

func (r NextRequest) Validate() map[string]string {
	fields := map[string]string{}
	if !domain.ValidEnergies[r.Energy] {
		fields["energy"] = "Energy must be low, med, or high"
	}
	if !domain.ValidUrgencies[r.Urgency] {
		fields["urgency"] = "Urgency must be low, med, or high"
	}
	if _, ok := resolveTime(r.TimeMinutes, r.TimeInput); !ok {
		fields["time"] = "Provide timeMinutes or valid timeInput (e.g. 45m, 2h, 1d)"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (r NextRequest) ResolveTimeMinutes() (int, bool) {
	return resolveTime(r.TimeMinutes, r.TimeInput)
}

func resolveTime(minutes *int, input string) (int, bool) {
	if text := strings.TrimSpace(input); text != "" {
		return timeparse.Parse(text)
	}
	if minutes != nil && *minutes > 0 && *minutes <= timeparse.MaxMinutes {
		return *minutes, true
	}
	return 0, false
}

// GeneratedTaskView is the suggested idea as returned to the client.
type GeneratedTaskView struct {
	Title            string   `json:"title"`
	NextAction       string   `json:"nextAction"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	Tags             []string `json:"tags"`
	Reasoning        string   `json:"reasoning"`
	Confidence       string   `json:"confidence"`
}

// SuggestMeta carries the provenance recorded with the suggestion.
type SuggestMeta struct {
	SourceFeatures []string `json:"sourceFeatures"`
	ShortlistHash  string   `json:"shortlistHash"`
}

// FallbackView is returned with a 200 when the model could not produce a
// usable idea. DeterministicIdea is empty when the retry was already spent.
type FallbackView struct {
	Message           string `json:"message"`
	DeterministicIdea string `json:"deterministicIdea"`
}

// SuggestResponse is the body of POST /api/recommendations. Exactly one of
// the three shapes is populated.
type SuggestResponse struct {
	DailyLimitReached bool   `json:"dailyLimitReached,omitempty"`
	Message           string `json:"message,omitempty"`

	Fallback *FallbackView `json:"fallback,omitempty"`

	Type             string             `json:"type,omitempty"`
	RecommendationID string             `json:"recommendationId,omitempty"`
	GeneratedTask    *GeneratedTaskView `json:"generatedTask,omitempty"`
	Model            string             `json:"model,omitempty"`
	Meta             *SuggestMeta       `json:"meta,omitempty"`
}

// NextResponse is the body of POST /api/recommendations/next.
type NextResponse struct {
	EventID     string `json:"eventId"`
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	NextAction  string `json:"nextAction"`
	Explanation string `json:"explanation"`
	Confidence  string `json:"confidence"`
	// Source is "llm" when the ranking model chose, "deterministic" otherwise.
	Source string `json:"source"`
}

// ConfirmResponse is the body returned when a suggestion becomes a task.
type ConfirmResponse struct {
	TaskID  string `json:"taskId"`
	Message string `json:"message"`
}

// EventView is one row of recommendation history.
type EventView struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId"`
	TaskTitle   string `json:"taskTitle,omitempty"`
	TimeMinutes int    `json:"timeMinutes"`
	Energy      string `json:"energy"`
	Urgency     string `json:"urgency"`
	Explanation string `json:"explanation"`
	Confidence  string `json:"confidence"`
	Decision    string `json:"decision"`
	CreatedAt   string `json:"createdAt"`
}

func NewEventView(e domain.RecommendationEvent, taskTitle string) EventView {
	return EventView{
		ID:          e.ID,
		TaskID:      e.TaskID,
		TaskTitle:   taskTitle,
		TimeMinutes: e.ContextTimeMinutes,
		Energy:      string(e.ContextEnergy),
		Urgency:     string(e.ContextUrgency),
		Explanation: e.Explanation,
		Confidence:  string(e.Confidence),
		Decision:    string(e.Decision),
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
