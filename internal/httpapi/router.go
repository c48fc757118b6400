package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter assembles the API. Everything under /api except /api/health
// requires a bearer token.
func NewRouter(h *Handlers, auth *AuthMiddleware, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(auth.Handler)

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			r.Put("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.ArchiveTask)
		})

		r.Route("/api/goals", func(r chi.Router) {
			r.Get("/", h.ListGoals)
			r.Post("/", h.CreateGoal)
			r.Put("/{id}", h.UpdateGoal)
			r.Delete("/{id}", h.ArchiveGoal)
		})

		r.Route("/api/user/interests", func(r chi.Router) {
			r.Get("/", h.ListInterests)
			r.Put("/", h.ReplaceInterests)
		})

		r.Route("/api/recommendations", func(r chi.Router) {
			r.Get("/", h.History)
			r.Post("/", h.Suggest)
			r.Post("/next", h.Next)
			r.Post("/events/{id}/decision", h.DecideEvent)
			r.Post("/generated/{id}/confirm", h.ConfirmSuggestion)
			r.Post("/generated/{id}/skip", h.SkipSuggestion)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
