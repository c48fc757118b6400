package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/amreid/nextup/internal/contract"
	"github.com/amreid/nextup/internal/domain"
	"github.com/amreid/nextup/internal/service"
	"github.com/go-chi/chi/v5"
)

// Handlers wires the services to HTTP. Each method is a thin adapter:
// decode, call the service, map the result.
type Handlers struct {
	db              *sql.DB
	tasks           *service.TaskService
	goals           *service.GoalService
	interests       *service.InterestService
	recommendations *service.RecommendationService
	suggestions     *service.SuggestionService
}

func NewHandlers(
	db *sql.DB,
	tasks *service.TaskService,
	goals *service.GoalService,
	interests *service.InterestService,
	recommendations *service.RecommendationService,
	suggestions *service.SuggestionService,
) *Handlers {
	return &Handlers{
		db:              db,
		tasks:           tasks,
		goals:           goals,
		interests:       interests,
		recommendations: recommendations,
		suggestions:     suggestions,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	views, err := h.tasks.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": views})
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var in contract.TaskInput
	if !decodeBody(w, r, &in) {
		return
	}
	view, err := h.tasks.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"task": view})
}

func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var in contract.TaskInput
	if !decodeBody(w, r, &in) {
		return
	}
	view, err := h.tasks.Update(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"task": view})
}

func (h *Handlers) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.tasks.Archive(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	views, err := h.goals.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": views})
}

func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var in contract.GoalInput
	if !decodeBody(w, r, &in) {
		return
	}
	view, err := h.goals.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"goal": view})
}

func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var in contract.GoalInput
	if !decodeBody(w, r, &in) {
		return
	}
	view, err := h.goals.Update(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal": view})
}

func (h *Handlers) ArchiveGoal(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.goals.Archive(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) ListInterests(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	labels, err := h.interests.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
}

func (h *Handlers) ReplaceInterests(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var in contract.InterestsInput
	if !decodeBody(w, r, &in) {
		return
	}
	labels, err := h.interests.Replace(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	events, err := h.recommendations.History(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *Handlers) Suggest(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req contract.SuggestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.suggestions.Suggest(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) Next(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req contract.NextRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.recommendations.Next(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) DecideEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var body struct {
		Decision string `json:"decision"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	err := h.recommendations.Decide(r.Context(), userID, chi.URLParam(r, "id"), domain.Decision(body.Decision))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) ConfirmSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	resp, err := h.suggestions.Confirm(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) SkipSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.suggestions.Skip(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
