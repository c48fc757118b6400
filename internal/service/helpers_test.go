package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/llm"
	"github.com/amreid/nextup/internal/quota"
	"github.com/amreid/nextup/internal/repository"
	"github.com/amreid/nextup/internal/testutil"
	"github.com/stretchr/testify/require"
)

// scriptedClient replays canned model responses in order.
type scriptedClient struct {
	responses []string
	errs      []error
	calls     int
}

func (f *scriptedClient) Generate(_ context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	text := ""
	if i < len(f.responses) {
		text = f.responses[i]
	}
	return &llm.GenerateResponse{Text: text, Model: "scripted-model"}, nil
}

func generatedJSON(title, nextAction string) string {
	return fmt.Sprintf(`{"type":"generated","generatedTask":{"title":%q,"nextAction":%q,"estimatedMinutes":40,"tags":["idea"],"reasoning":"Matches your interests and window.","confidence":"med"},"model":"","meta":{"sourceFeatures":["interest"],"shortlistHash":""}}`,
		title, nextAction)
}

type repos struct {
	db          *sql.DB
	users       repository.UserRepo
	tasks       repository.TaskRepo
	goals       repository.GoalRepo
	interests   repository.InterestRepo
	suggestions repository.SuggestionRepo
	events      repository.EventRepo
	budgets     repository.BudgetRepo
	tracker     *quota.Tracker
}

func newRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	suggestions := repository.NewSQLiteSuggestionRepo(database)
	budgets := repository.NewSQLiteBudgetRepo(database)
	return repos{
		db:          database,
		users:       repository.NewSQLiteUserRepo(database),
		tasks:       repository.NewSQLiteTaskRepo(database),
		goals:       repository.NewSQLiteGoalRepo(database),
		interests:   repository.NewSQLiteInterestRepo(database),
		suggestions: suggestions,
		events:      repository.NewSQLiteEventRepo(database),
		budgets:     budgets,
		tracker:     quota.NewTracker(suggestions, budgets),
	}
}

func requireContractError(t *testing.T, err error, code contract.ErrorCode) *contract.Error {
	t.Helper()
	require.Error(t, err)
	cerr, ok := err.(*contract.Error)
	require.True(t, ok, "expected *contract.Error, got %T", err)
	require.Equal(t, code, cerr.Code)
	return cerr
}
