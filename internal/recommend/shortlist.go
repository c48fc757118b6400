package recommend

import (
	"time"

	"github.com/amreid/nextup/internal/domain"
)

const (
	// ShortlistSize is the default top-N passed to the LLM ranking path.
	ShortlistSize = 30

	noteTruncate = 150
)

// ShortlistItem is the compact task view serialized into LLM prompts.
// Notes are truncated and deadlines rendered as RFC3339 strings.
type ShortlistItem struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Notes            string  `json:"notes,omitempty"`
	EstimatedMinutes *int    `json:"estimatedMinutes"`
	Priority         *int    `json:"priority"`
	Urgency          *int    `json:"urgency"`
	DeadlineAt       *string `json:"deadlineAt"`
}

// BuildShortlist takes the top n scored tasks, optionally excluding one task
// id. If the exclusion empties the list, the unfiltered top n is returned so
// the prompt is never starved of candidates.
func BuildShortlist(scored []Scored, n int, excludeID string) []ShortlistItem {
	if n <= 0 {
		n = ShortlistSize
	}

	filtered := ExcludeTask(scored, excludeID)
	if len(filtered) == 0 {
		filtered = scored
	}
	if len(filtered) > n {
		filtered = filtered[:n]
	}

	items := make([]ShortlistItem, 0, len(filtered))
	for _, s := range filtered {
		items = append(items, serializeShortlistItem(s.Task))
	}
	return items
}

func serializeShortlistItem(t domain.Task) ShortlistItem {
	item := ShortlistItem{
		ID:               t.ID,
		Title:            t.Title,
		EstimatedMinutes: t.EstimatedMinutes,
		Priority:         t.Priority,
		Urgency:          t.Urgency,
	}
	if t.Notes != "" {
		item.Notes = truncateNotes(t.Notes)
	}
	if t.DeadlineAt != nil {
		iso := t.DeadlineAt.UTC().Format(time.RFC3339)
		item.DeadlineAt = &iso
	}
	return item
}

func truncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= noteTruncate {
		return notes
	}
	return string(runes[:noteTruncate]) + "…"
}
