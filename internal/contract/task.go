package contract

import (
	"strings"
	"time"

	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/timeparse"
)

const (
	maxTitleLen      = 200
	maxNotesLen      = 4000
	maxEstimateInput = 50
	maxDirectMinutes = 24 * 60
)

// TaskInput is the create/update body for a task. An estimate may arrive as
// a plain number of minutes or as free text like "1.5h"; the text form wins
// when both are present and is preserved verbatim.
type TaskInput struct {
	Title            string  `json:"title"`
	Notes            string  `json:"notes,omitempty"`
	GoalID           *string `json:"goalId,omitempty"`
	EstimatedMinutes *int    `json:"estimatedMinutes,omitempty"`
	EstimatedInput   string  `json:"estimatedInput,omitempty"`
	Priority         *int    `json:"priority,omitempty"`
	Urgency          *int    `json:"urgency,omitempty"`
	DeadlineAt       *string `json:"deadlineAt,omitempty"` // RFC3339
}

// Validate checks field constraints and returns per-field messages.
func (in TaskInput) Validate() map[string]string {
	fields := map[string]string{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields["title"] = "Title is required"
	} else if len([]rune(title)) > maxTitleLen {
		fields["title"] = "Title must be at most 200 characters"
	}
	if len([]rune(in.Notes)) > maxNotesLen {
		fields["notes"] = "Notes must be at most 4000 characters"
	}
	if in.EstimatedMinutes != nil {
		if *in.EstimatedMinutes < 1 || *in.EstimatedMinutes > maxDirectMinutes {
			fields["estimatedMinutes"] = "Estimate must be between 1 and 1440 minutes"
		}
	}
	if len([]rune(in.EstimatedInput)) > maxEstimateInput {
		fields["estimatedInput"] = "Estimate text must be at most 50 characters"
	} else if strings.TrimSpace(in.EstimatedInput) != "" {
		if _, ok := timeparse.Parse(in.EstimatedInput); !ok {
			fields["estimatedInput"] = "Estimate text must look like 45m, 2h, or 1d"
		}
	}
	if in.Priority != nil && (*in.Priority < 1 || *in.Priority > 5) {
		fields["priority"] = "Priority must be between 1 and 5"
	}
	if in.Urgency != nil && (*in.Urgency < 1 || *in.Urgency > 5) {
		fields["urgency"] = "Urgency must be between 1 and 5"
	}
	if in.DeadlineAt != nil {
		if _, err := time.Parse(time.RFC3339, *in.DeadlineAt); err != nil {
			fields["deadlineAt"] = "Deadline must be an RFC3339 timestamp"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ResolveEstimate returns the effective minutes and raw text of the
// estimate. Text input takes precedence over the numeric field.
func (in TaskInput) ResolveEstimate() (minutes *int, raw string) {
	if text := strings.TrimSpace(in.EstimatedInput); text != "" {
		if m, ok := timeparse.Parse(text); ok {
			return &m, text
		}
		return nil, text
	}
	return in.EstimatedMinutes, ""
}

// GoalInput is the create/update body for a goal.
type GoalInput struct {
	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`
}

func (in GoalInput) Validate() map[string]string {
	fields := map[string]string{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields["title"] = "Title is required"
	} else if len([]rune(title)) > maxTitleLen {
		fields["title"] = "Title must be at most 200 characters"
	}
	if len([]rune(in.Notes)) > 2000 {
		fields["notes"] = "Notes must be at most 2000 characters"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// InterestsInput replaces the user's interest list wholesale.
type InterestsInput struct {
	Labels []string `json:"labels"`
}

// TaskView is the JSON shape of a task in API responses.
type TaskView struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Notes            string  `json:"notes,omitempty"`
	GoalID           *string `json:"goalId,omitempty"`
	GoalTitle        string  `json:"goalTitle,omitempty"`
	EstimatedMinutes *int    `json:"estimatedMinutes"`
	EstimatedInput   string  `json:"estimatedInput,omitempty"`
	Priority         *int    `json:"priority"`
	Urgency          *int    `json:"urgency"`
	DeadlineAt       *string `json:"deadlineAt"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

func NewTaskView(t domain.Task, goalTitle string) TaskView {
	v := TaskView{
		ID:               t.ID,
		Title:            t.Title,
		Notes:            t.Notes,
		GoalID:           t.GoalID,
		GoalTitle:        goalTitle,
		EstimatedMinutes: t.EstimatedMinutes,
		EstimatedInput:   t.EstimatedInput,
		Priority:         t.Priority,
		Urgency:          t.Urgency,
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.DeadlineAt != nil {
		iso := t.DeadlineAt.UTC().Format(time.RFC3339)
		v.DeadlineAt = &iso
	}
	return v
}

// GoalView is the JSON shape of a goal in API responses.
type GoalView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewGoalView(g domain.Goal) GoalView {
	return GoalView{
		ID:        g.ID,
		Title:     g.Title,
		Notes:     g.Notes,
		Status:    string(g.Status),
		CreatedAt: g.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
