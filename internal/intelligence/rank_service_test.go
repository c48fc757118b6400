package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankInput(items ...recommend.ShortlistItem) RankInput {
	return RankInput{
		Shortlist:        items,
		TimeMinutes:      45,
		Energy:           domain.EnergyHigh,
		Urgency:          domain.UrgencyMed,
		InterestsSummary: "interests: [running].",
		BehaviorSummary:  "Last 10 (existing recs): 3 accepted, 2 skipped. Last 10 (generated): 0 accepted, 0 skipped. No task titles.",
	}
}

func shortlistItem(id, title string) recommend.ShortlistItem {
	return recommend.ShortlistItem{ID: id, Title: title}
}

func TestRank_PicksFromShortlist(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"recommendedTaskId":"t2","recommendedNextActionText":"Lace up and go","explanation":"Fits your energy and the time you have.","confidence":"high"}`,
	}}
	svc := NewRankService(client)

	got, err := svc.Rank(context.Background(), rankInput(
		shortlistItem("t1", "File taxes"),
		shortlistItem("t2", "Run 5k"),
	))

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t2", got.RecommendedTaskID)
	assert.Equal(t, "Lace up and go", got.RecommendedNextActionText)
	assert.Equal(t, "high", got.Confidence)
}

func TestRank_RejectsUnknownTaskID(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"recommendedTaskId":"made-up","recommendedNextActionText":"x","explanation":"y","confidence":"med"}`,
	}}
	svc := NewRankService(client)

	got, err := svc.Rank(context.Background(), rankInput(shortlistItem("t1", "File taxes")))

	require.NoError(t, err)
	assert.Nil(t, got, "hallucinated ids fall back to the deterministic pick")
}

func TestRank_ClientErrorReturnsNil(t *testing.T) {
	client := &fakeClient{errs: []error{errors.New("boom")}}
	svc := NewRankService(client)

	got, err := svc.Rank(context.Background(), rankInput(shortlistItem("t1", "File taxes")))

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRank_EmptyShortlistReturnsNil(t *testing.T) {
	client := &fakeClient{}
	svc := NewRankService(client)

	got, err := svc.Rank(context.Background(), rankInput())

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, client.calls, "no model call without candidates")
}

func TestRank_PromptListsCandidates(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"recommendedTaskId":"t1","recommendedNextActionText":"x","explanation":"y","confidence":"low"}`,
	}}
	svc := NewRankService(client)

	est := 30
	item := shortlistItem("t1", "File taxes")
	item.EstimatedMinutes = &est
	_, err := svc.Rank(context.Background(), rankInput(item))
	require.NoError(t, err)

	require.Len(t, client.calls, 1)
	prompt := client.calls[0].UserPrompt
	assert.Contains(t, prompt, "id: t1 | title: File taxes")
	assert.Contains(t, prompt, "estMin: 30")
	assert.Contains(t, prompt, "Available time: 45 minutes")
}
