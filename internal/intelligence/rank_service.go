package intelligence

import (
	"context"

	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/llm"
	"github.com/amreid/nextup/internal/recommend"
)

// RankInput carries the pre-ranked shortlist plus the user's context.
type RankInput struct {
	Shortlist        []recommend.ShortlistItem
	TimeMinutes      int
	Energy           domain.Energy
	Urgency          domain.Urgency
	InterestsSummary string
	BehaviorSummary  string
}

// RankService asks the model to pick one task from a shortlist. It returns
// (nil, nil) on any model failure so callers always have the deterministic
// pick to fall back on.
type RankService interface {
	Rank(ctx context.Context, in RankInput) (*RankResult, error)
}

type rankService struct {
	client llm.Client
}

func NewRankService(client llm.Client) RankService {
	return &rankService{client: client}
}

func (s *rankService) Rank(ctx context.Context, in RankInput) (*RankResult, error) {
	if s.client == nil || len(in.Shortlist) == 0 {
		return nil, nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRank,
		SystemPrompt: rankSystemPrompt,
		UserPrompt:   buildRankUserPrompt(in),
	})
	if err != nil {
		return nil, nil
	}

	allowed := make(map[string]bool, len(in.Shortlist))
	for _, item := range in.Shortlist {
		allowed[item.ID] = true
	}

	result, err := llm.ExtractJSON[RankResult](resp.Text, func(r RankResult) error {
		return ValidateRankResult(r, allowed)
	})
	if err != nil {
		return nil, nil
	}
	return &result, nil
}
