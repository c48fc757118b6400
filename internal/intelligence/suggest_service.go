package intelligence

import (
	"context"

	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/llm"
	"github.com/amreid/nextup/internal/similarity"
)

// Fallback messages returned when the model cannot produce a usable idea.
const (
	UnavailableMessage    = "AI is unavailable. Here's a short idea you can try:"
	RetryExhaustedMessage = "I couldn't find a truly new idea right now. Try adjusting your interests or time window."

	// deterministicIdea is always actionable regardless of the user's context.
	deterministicIdea = "Spend 15 minutes on the one thing that would make tomorrow easier."
)

// SuggestInput carries everything the model needs to invent one new task.
type SuggestInput struct {
	TimeMinutes      int
	Energy           domain.Energy
	Uniqueness       domain.Uniqueness
	IdeaHint         string
	InterestsSummary string
	BehaviorSummary  string

	// ReferenceTexts are existing task titles and recent suggestion texts.
	// A new idea too similar to any of them is rejected and retried.
	ReferenceTexts []string
}

// SuggestFallback is the deterministic answer used when generation fails.
type SuggestFallback struct {
	Message           string
	DeterministicIdea string
}

// SuggestOutcome is either a validated payload or a fallback, never both.
type SuggestOutcome struct {
	Success  bool
	Payload  *GeneratedPayload
	Fallback *SuggestFallback
}

// SuggestService produces one brand-new task idea per call.
type SuggestService interface {
	Suggest(ctx context.Context, in SuggestInput) SuggestOutcome
}

type suggestService struct {
	client llm.Client
}

// NewSuggestService creates a SuggestService. A nil client means no provider
// is configured; every call then returns the unavailable fallback.
func NewSuggestService(client llm.Client) SuggestService {
	return &suggestService{client: client}
}

// Suggest runs generate, similarity guard, and a single retry. Any model
// failure on the first attempt degrades to the generic fallback idea; a
// failure after the guard has already rejected one idea reports that no
// sufficiently new idea was found, with no canned idea attached.
func (s *suggestService) Suggest(ctx context.Context, in SuggestInput) SuggestOutcome {
	if s.client == nil {
		return unavailableOutcome()
	}

	payload, err := s.generateOnce(ctx, in, nil)
	if err != nil {
		return unavailableOutcome()
	}

	threshold := similarity.ThresholdFor(in.Uniqueness)
	if !similarity.TooSimilar(payload.GeneratedTask.Title, payload.GeneratedTask.NextAction, in.ReferenceTexts, threshold) {
		return SuggestOutcome{Success: true, Payload: payload}
	}

	// One retry, now telling the model what to avoid.
	payload, err = s.generateOnce(ctx, in, in.ReferenceTexts)
	if err != nil {
		return exhaustedOutcome()
	}
	if similarity.TooSimilar(payload.GeneratedTask.Title, payload.GeneratedTask.NextAction, in.ReferenceTexts, threshold) {
		return exhaustedOutcome()
	}
	return SuggestOutcome{Success: true, Payload: payload}
}

func (s *suggestService) generateOnce(ctx context.Context, in SuggestInput, avoid []string) (*GeneratedPayload, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggest,
		SystemPrompt: suggestSystemPrompt,
		UserPrompt:   buildSuggestUserPrompt(in, avoid),
	})
	if err != nil {
		return nil, err
	}

	payload, err := llm.ExtractJSON[GeneratedPayload](resp.Text, ValidateGeneratedPayload)
	if err != nil {
		return nil, err
	}

	NormalizeGeneratedTask(&payload.GeneratedTask)
	if payload.Model == "" {
		payload.Model = resp.Model
	}
	return &payload, nil
}

func unavailableOutcome() SuggestOutcome {
	return SuggestOutcome{
		Fallback: &SuggestFallback{
			Message:           UnavailableMessage,
			DeterministicIdea: deterministicIdea,
		},
	}
}

func exhaustedOutcome() SuggestOutcome {
	return SuggestOutcome{
		Fallback: &SuggestFallback{
			Message:           RetryExhaustedMessage,
			DeterministicIdea: "",
		},
	}
}
