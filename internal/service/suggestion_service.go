package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/intelligence"
	"github.com/amreid/nextup/internal/quota"
	"github.com/amreid/nextup/internal/repository"
	"github.com/google/uuid"
)

const (
	referenceTaskLimit       = 100
	referenceSuggestionLimit = 20
)

// SuggestionService runs the generative path: quota gate, context gathering,
// model orchestration, and persistence of the resulting suggestion.
type SuggestionService struct {
	tasks       repository.TaskRepo
	events      repository.EventRepo
	interests   repository.InterestRepo
	suggestions repository.SuggestionRepo
	suggester   intelligence.SuggestService
	tracker     *quota.Tracker
	observer    UseCaseObserver
	now         func() time.Time
}

func NewSuggestionService(
	tasks repository.TaskRepo,
	events repository.EventRepo,
	interests repository.InterestRepo,
	suggestions repository.SuggestionRepo,
	suggester intelligence.SuggestService,
	tracker *quota.Tracker,
	observer UseCaseObserver,
) *SuggestionService {
	return &SuggestionService{
		tasks:       tasks,
		events:      events,
		interests:   interests,
		suggestions: suggestions,
		suggester:   suggester,
		tracker:     tracker,
		observer:    observerOrNoop(observer),
		now:         time.Now,
	}
}

// WithClock overrides the time source for tests.
func (s *SuggestionService) WithClock(now func() time.Time) *SuggestionService {
	s.now = now
	return s
}

// Suggest produces one new AI task idea. Quota exhaustion and model
// fallbacks are ordinary 200 responses, not errors; only invalid input and
// storage failures surface as errors.
func (s *SuggestionService) Suggest(ctx context.Context, userID string, req contract.SuggestRequest) (*contract.SuggestResponse, error) {
	start := time.Now()
	var err error
	var outcome string
	defer func() {
		observe(ctx, s.observer, "suggest", start, err, map[string]any{"outcome": outcome})
	}()

	if fields := req.Validate(); fields != nil {
		err = contract.NewValidationError(fields)
		return nil, err
	}
	timeMinutes, _ := req.ResolveTimeMinutes()

	// The quota check happens before any model call, and a fresh suggestion
	// row is only written after a successful one. Counting rows therefore
	// enforces the cap without a separate counter.
	allowed, quotaErr := s.tracker.CanUseGenerated(ctx, userID)
	if quotaErr != nil {
		err = contract.NewError(contract.ErrInternal, "could not check quota")
		return nil, err
	}
	if !allowed {
		outcome = "daily_limit"
		return &contract.SuggestResponse{
			DailyLimitReached: true,
			Message:           contract.DailyLimitMessage,
		}, nil
	}

	in := s.buildSuggestInput(ctx, userID, timeMinutes, req)
	result := s.suggester.Suggest(ctx, in)
	if !result.Success {
		outcome = "fallback"
		return &contract.SuggestResponse{
			Fallback: &contract.FallbackView{
				Message:           result.Fallback.Message,
				DeterministicIdea: result.Fallback.DeterministicIdea,
			},
		}, nil
	}

	payload := result.Payload
	shortlistHash := payload.Meta.ShortlistHash
	if shortlistHash == "" {
		shortlistHash = fmt.Sprintf("%s-%s", userID, s.now().UTC().Format("2006-01-02"))
	}

	now := s.now().UTC()
	suggestion := &domain.GeneratedSuggestion{
		ID:                 uuid.New().String(),
		UserID:             userID,
		ContextTimeMinutes: timeMinutes,
		ContextEnergy:      domain.Energy(req.Energy),
		ContextUrgency:     domain.UrgencyMed,
		ContextUniqueness:  domain.Uniqueness(req.Uniqueness),
		Title:              payload.GeneratedTask.Title,
		NextAction:         payload.GeneratedTask.NextAction,
		EstimatedMinutes:   payload.GeneratedTask.EstimatedMinutes,
		Tags:               payload.GeneratedTask.Tags,
		Reasoning:          payload.GeneratedTask.Reasoning,
		Confidence:         domain.Confidence(payload.GeneratedTask.Confidence),
		Model:              payload.Model,
		SourceFeatures:     payload.Meta.SourceFeatures,
		ShortlistHash:      shortlistHash,
		Decision:           domain.DecisionPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if createErr := s.suggestions.Create(ctx, suggestion); createErr != nil {
		err = contract.NewError(contract.ErrInternal, "could not save suggestion")
		return nil, err
	}

	outcome = "generated"
	return &contract.SuggestResponse{
		Type:             "generated",
		RecommendationID: suggestion.ID,
		GeneratedTask: &contract.GeneratedTaskView{
			Title:            payload.GeneratedTask.Title,
			NextAction:       payload.GeneratedTask.NextAction,
			EstimatedMinutes: payload.GeneratedTask.EstimatedMinutes,
			Tags:             payload.GeneratedTask.Tags,
			Reasoning:        payload.GeneratedTask.Reasoning,
			Confidence:       payload.GeneratedTask.Confidence,
		},
		Model: payload.Model,
		Meta: &contract.SuggestMeta{
			SourceFeatures: payload.Meta.SourceFeatures,
			ShortlistHash:  shortlistHash,
		},
	}, nil
}

func (s *SuggestionService) buildSuggestInput(ctx context.Context, userID string, timeMinutes int, req contract.SuggestRequest) intelligence.SuggestInput {
	interests, err := s.interests.List(ctx, userID)
	if err != nil {
		interests = nil
	}
	withGoals, err := s.tasks.ListOpenWithGoals(ctx, userID, interestTaskLimit)
	if err != nil {
		withGoals = nil
	}
	recentEvents, err := s.events.ListRecent(ctx, userID, recentDecisionWindow)
	if err != nil {
		recentEvents = nil
	}
	recentGenerated, err := s.suggestions.ListRecent(ctx, userID, recentDecisionWindow)
	if err != nil {
		recentGenerated = nil
	}

	open, err := s.tasks.ListOpen(ctx, userID)
	if err != nil {
		open = nil
	}
	titles := make([]string, 0, referenceTaskLimit)
	for _, t := range open {
		if len(titles) == referenceTaskLimit {
			break
		}
		titles = append(titles, t.Title)
	}
	recentTexts, err := s.suggestions.ListRecent(ctx, userID, referenceSuggestionLimit)
	if err != nil {
		recentTexts = nil
	}

	return intelligence.SuggestInput{
		TimeMinutes:      timeMinutes,
		Energy:           domain.Energy(req.Energy),
		Uniqueness:       domain.Uniqueness(req.Uniqueness),
		IdeaHint:         req.IdeaHint,
		InterestsSummary: intelligence.BuildInterestsSummary(interests, withGoals),
		BehaviorSummary:  intelligence.BuildBehaviorSummary(recentEvents, recentGenerated),
		ReferenceTexts:   intelligence.BuildReferenceTexts(titles, recentTexts),
	}
}

// Confirm turns a pending suggestion into a real task. The suggestion's
// next action is stored in the task notes so it survives the conversion.
func (s *SuggestionService) Confirm(ctx context.Context, userID, id string) (*contract.ConfirmResponse, error) {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "suggestion_confirm", start, err, nil) }()

	suggestion, getErr := s.suggestions.GetByID(ctx, userID, id)
	if getErr != nil {
		err = contract.NewError(contract.ErrNotFound, contract.SuggestionUsedMessage)
		return nil, err
	}

	now := s.now().UTC()
	estimate := suggestion.EstimatedMinutes
	spawned := &domain.Task{
		ID:               uuid.New().String(),
		UserID:           userID,
		Title:            suggestion.Title,
		Notes:            suggestion.NextAction,
		EstimatedMinutes: &estimate,
		Status:           domain.TaskTodo,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if acceptErr := s.suggestions.Accept(ctx, userID, id, spawned); acceptErr != nil {
		err = contract.NewError(contract.ErrNotFound, contract.SuggestionUsedMessage)
		return nil, err
	}

	return &contract.ConfirmResponse{
		TaskID:  spawned.ID,
		Message: contract.ConfirmedMessage,
	}, nil
}

// Skip marks a pending suggestion skipped.
func (s *SuggestionService) Skip(ctx context.Context, userID, id string) error {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "suggestion_skip", start, err, nil) }()

	if skipErr := s.suggestions.Skip(ctx, userID, id); skipErr != nil {
		err = contract.NewError(contract.ErrNotFound, contract.SuggestionUsedMessage)
		return err
	}
	return nil
}
