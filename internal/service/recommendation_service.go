package service

import (
	"context"
	"time"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/intelligence"
	"github.com/amreid/nextup/internal/quota"
	"github.com/amreid/nextup/internal/recommend"
	"github.com/amreid/nextup/internal/repository"
	"github.com/google/uuid"
)

const (
	recentDecisionWindow = 10
	historyLimit         = 50
	interestTaskLimit    = 50
)

// RecommendationService answers "what should I do next" from the user's
// existing tasks. The deterministic scorer always runs; the ranking model is
// consulted on top when budget remains, and its pick wins only when valid.
type RecommendationService struct {
	tasks       repository.TaskRepo
	events      repository.EventRepo
	interests   repository.InterestRepo
	suggestions repository.SuggestionRepo
	ranker      intelligence.RankService
	tracker     *quota.Tracker
	observer    UseCaseObserver
	now         func() time.Time
}

func NewRecommendationService(
	tasks repository.TaskRepo,
	events repository.EventRepo,
	interests repository.InterestRepo,
	suggestions repository.SuggestionRepo,
	ranker intelligence.RankService,
	tracker *quota.Tracker,
	observer UseCaseObserver,
) *RecommendationService {
	return &RecommendationService{
		tasks:       tasks,
		events:      events,
		interests:   interests,
		suggestions: suggestions,
		ranker:      ranker,
		tracker:     tracker,
		observer:    observerOrNoop(observer),
		now:         time.Now,
	}
}

// WithClock overrides the time source for tests.
func (s *RecommendationService) WithClock(now func() time.Time) *RecommendationService {
	s.now = now
	return s
}

// Next picks one task for the current context and appends a pending
// recommendation event. The event id is returned so the client can report
// the user's decision later.
func (s *RecommendationService) Next(ctx context.Context, userID string, req contract.NextRequest) (*contract.NextResponse, error) {
	start := time.Now()
	var err error
	var source string
	defer func() {
		observe(ctx, s.observer, "recommend_next", start, err, map[string]any{"source": source})
	}()

	if fields := req.Validate(); fields != nil {
		err = contract.NewValidationError(fields)
		return nil, err
	}
	timeMinutes, _ := req.ResolveTimeMinutes()

	open, listErr := s.tasks.ListOpen(ctx, userID)
	if listErr != nil {
		err = contract.NewError(contract.ErrInternal, "could not load tasks")
		return nil, err
	}
	if len(open) == 0 {
		err = contract.NewError(contract.ErrNotFound, "No open tasks to recommend")
		return nil, err
	}

	rctx := recommend.Context{
		TimeMinutes: timeMinutes,
		Energy:      domain.Energy(req.Energy),
		Urgency:     domain.Urgency(req.Urgency),
	}
	now := s.now().UTC()
	scored := recommend.ScoreCandidates(open, rctx, now)
	candidates := recommend.ExcludeTask(scored, req.ExcludeTaskID)
	if len(candidates) == 0 {
		candidates = scored
	}

	pick := recommend.PickDirect(candidates, timeMinutes)
	if pick == nil {
		err = contract.NewError(contract.ErrNotFound, "No open tasks to recommend")
		return nil, err
	}

	resp := &contract.NextResponse{
		TaskID:      pick.Task.ID,
		Title:       pick.Task.Title,
		NextAction:  pick.Task.Title,
		Explanation: recommend.Explain(*pick, rctx, now),
		Confidence:  string(domain.ConfidenceMed),
		Source:      "deterministic",
	}

	if ranked := s.tryRank(ctx, userID, candidates, rctx); ranked != nil {
		if task := findScored(candidates, ranked.RecommendedTaskID); task != nil {
			resp.TaskID = task.Task.ID
			resp.Title = task.Task.Title
			resp.NextAction = ranked.RecommendedNextActionText
			resp.Explanation = ranked.Explanation
			resp.Confidence = ranked.Confidence
			resp.Source = "llm"
			pick = task
		}
	}
	source = resp.Source

	event := &domain.RecommendationEvent{
		ID:                 uuid.New().String(),
		UserID:             userID,
		TaskID:             resp.TaskID,
		ContextTimeMinutes: timeMinutes,
		ContextEnergy:      rctx.Energy,
		ContextUrgency:     rctx.Urgency,
		Explanation:        resp.Explanation,
		Confidence:         domain.Confidence(resp.Confidence),
		Score:              pick.Score,
		Decision:           domain.DecisionPending,
		CreatedAt:          now,
	}
	if createErr := s.events.Create(ctx, event); createErr != nil {
		err = contract.NewError(contract.ErrInternal, "could not record recommendation")
		return nil, err
	}
	resp.EventID = event.ID
	return resp, nil
}

// tryRank consults the ranking model when budget remains. Every failure path
// returns nil so the deterministic pick stands. The budget is charged only
// for answers that actually arrived.
func (s *RecommendationService) tryRank(ctx context.Context, userID string, candidates []recommend.Scored, rctx recommend.Context) *intelligence.RankResult {
	if s.ranker == nil || s.tracker == nil {
		return nil
	}
	ok, err := s.tracker.CanUseRanking(ctx, userID)
	if err != nil || !ok {
		return nil
	}

	shortlist := recommend.BuildShortlist(candidates, recommend.ShortlistSize, "")
	interestsSummary, behaviorSummary := s.buildSummaries(ctx, userID)

	result, err := s.ranker.Rank(ctx, intelligence.RankInput{
		Shortlist:        shortlist,
		TimeMinutes:      rctx.TimeMinutes,
		Energy:           rctx.Energy,
		Urgency:          rctx.Urgency,
		InterestsSummary: interestsSummary,
		BehaviorSummary:  behaviorSummary,
	})
	if err != nil || result == nil {
		return nil
	}
	if incErr := s.tracker.IncrementRanking(ctx, userID); incErr != nil {
		return nil
	}
	return result
}

func (s *RecommendationService) buildSummaries(ctx context.Context, userID string) (string, string) {
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
	return intelligence.BuildInterestsSummary(interests, withGoals),
		intelligence.BuildBehaviorSummary(recentEvents, recentGenerated)
}

// History returns the most recent recommendation events with task titles.
func (s *RecommendationService) History(ctx context.Context, userID string) ([]contract.EventView, error) {
	events, err := s.events.ListRecent(ctx, userID, historyLimit)
	if err != nil {
		return nil, contract.NewError(contract.ErrInternal, "could not load history")
	}
	views := make([]contract.EventView, 0, len(events))
	for _, e := range events {
		title := ""
		if task, getErr := s.tasks.GetByID(ctx, userID, e.TaskID); getErr == nil {
			title = task.Title
		}
		views = append(views, contract.NewEventView(e, title))
	}
	return views, nil
}

// Decide records the user's accept/skip on a recommendation event.
func (s *RecommendationService) Decide(ctx context.Context, userID, eventID string, decision domain.Decision) error {
	start := time.Now()
	var err error
	defer func() { observe(ctx, s.observer, "recommend_decide", start, err, nil) }()

	if decision != domain.DecisionAccepted && decision != domain.DecisionSkipped {
		err = contract.NewValidationError(map[string]string{"decision": "Decision must be accepted or skipped"})
		return err
	}
	if setErr := s.events.SetDecision(ctx, userID, eventID, decision); setErr != nil {
		err = mapRepoErr(setErr, "Recommendation not found")
		return err
	}
	return nil
}

func findScored(scored []recommend.Scored, taskID string) *recommend.Scored {
	for i := range scored {
		if scored[i].Task.ID == taskID {
			return &scored[i]
		}
	}
	return nil
}
