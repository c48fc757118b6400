package intelligence

import (
	"fmt"
	"strings"

	"github.com/amreid/nextup/internal/domain"
)

// nextActionMaxLen caps the single-step action so it stays scannable in the UI.
const nextActionMaxLen = 120

const maxTags = 3

// GeneratedTask is the task idea the model proposes.
type GeneratedTask struct {
	Title            string   `json:"title"`
	NextAction       string   `json:"nextAction"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	Tags             []string `json:"tags"`
	Reasoning        string   `json:"reasoning"`
	Confidence       string   `json:"confidence"`
}

// GeneratedMeta carries provenance the model reports about its own output.
type GeneratedMeta struct {
	SourceFeatures []string `json:"sourceFeatures"`
	ShortlistHash  string   `json:"shortlistHash"`
}

// GeneratedPayload is the full JSON object expected from a suggest call.
type GeneratedPayload struct {
	Type          string        `json:"type"`
	GeneratedTask GeneratedTask `json:"generatedTask"`
	Model         string        `json:"model"`
	Meta          GeneratedMeta `json:"meta"`
}

// RankResult is the JSON object expected from a rank call.
type RankResult struct {
	RecommendedTaskID         string `json:"recommendedTaskId"`
	RecommendedNextActionText string `json:"recommendedNextActionText"`
	Explanation               string `json:"explanation"`
	Confidence                string `json:"confidence"`
}

// ValidateGeneratedPayload rejects structurally unusable model output.
// Length problems are fixed up later by NormalizeGeneratedTask instead of
// being treated as failures.
func ValidateGeneratedPayload(p GeneratedPayload) error {
	t := p.GeneratedTask
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("generatedTask.title is empty")
	}
	if strings.TrimSpace(t.NextAction) == "" {
		return fmt.Errorf("generatedTask.nextAction is empty")
	}
	if t.EstimatedMinutes < 1 {
		return fmt.Errorf("generatedTask.estimatedMinutes must be at least 1, got %d", t.EstimatedMinutes)
	}
	if !domain.ValidConfidences[t.Confidence] {
		return fmt.Errorf("generatedTask.confidence %q is not one of low, med, high", t.Confidence)
	}
	return nil
}

// NormalizeGeneratedTask trims oversized fields in place rather than
// rejecting an otherwise good idea.
func NormalizeGeneratedTask(t *GeneratedTask) {
	t.Title = strings.TrimSpace(t.Title)
	t.NextAction = strings.TrimSpace(t.NextAction)
	if runes := []rune(t.NextAction); len(runes) > nextActionMaxLen {
		t.NextAction = string(runes[:nextActionMaxLen])
	}
	if len(t.Tags) > maxTags {
		t.Tags = t.Tags[:maxTags]
	}
}

// ValidateRankResult checks a ranking answer against the shortlist it was
// asked to choose from.
func ValidateRankResult(r RankResult, allowedTaskIDs map[string]bool) error {
	if r.RecommendedTaskID == "" {
		return fmt.Errorf("recommendedTaskId is empty")
	}
	if !allowedTaskIDs[r.RecommendedTaskID] {
		return fmt.Errorf("recommendedTaskId %q is not in the shortlist", r.RecommendedTaskID)
	}
	if strings.TrimSpace(r.Explanation) == "" {
		return fmt.Errorf("explanation is empty")
	}
	if !domain.ValidConfidences[r.Confidence] {
		return fmt.Errorf("confidence %q is not one of low, med, high", r.Confidence)
	}
	return nil
}
