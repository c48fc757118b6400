package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amreid/nextup/internal/config"
	"github.com/amreid/nextup/internal/db"
	"github.com/amreid/nextup/internal/httpapi"
	"github.com/amreid/nextup/internal/intelligence"
	"github.com/amreid/nextup/internal/llm"
	"github.com/amreid/nextup/internal/quota"
	"github.com/amreid/nextup/internal/repository"
	"github.com/amreid/nextup/internal/service"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	users := repository.NewSQLiteUserRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	goals := repository.NewSQLiteGoalRepo(database)
	interests := repository.NewSQLiteInterestRepo(database)
	suggestions := repository.NewSQLiteSuggestionRepo(database)
	events := repository.NewSQLiteEventRepo(database)
	budgets := repository.NewSQLiteBudgetRepo(database)
	tracker := quota.NewTracker(suggestions, budgets)

	// The server runs without a model key; the intelligence services then
	// degrade to deterministic fallbacks instead of failing requests.
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewSlogObserver(logger)
	}
	client, err := llm.NewOpenAIClient(cfg.LLM, observer)
	if err != nil {
		if !errors.Is(err, llm.ErrMissingAPIKey) {
			return err
		}
		logger.Warn("NEXTUP_LLM_API_KEY is unset; AI suggestions and ranking are disabled")
		client = nil
	}

	obs := service.NewLogUseCaseObserver(os.Stderr)
	handlers := httpapi.NewHandlers(
		database,
		service.NewTaskService(tasks, goals, obs),
		service.NewGoalService(goals, obs),
		service.NewInterestService(interests, users, obs),
		service.NewRecommendationService(tasks, events, interests, suggestions, intelligence.NewRankService(client), tracker, obs),
		service.NewSuggestionService(tasks, events, interests, suggestions, intelligence.NewSuggestService(client), tracker, obs),
	)
	auth := httpapi.NewAuthMiddleware([]byte(cfg.JWTSecret), users)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewRouter(handlers, auth, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.Addr, "db", cfg.DBPath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(stopCtx)
}
