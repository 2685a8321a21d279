package scoringrouter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	scoringhandlers "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/handlers"
)

// New builds the HTTP router. Score writes are rate limited per access
// token; the public leaderboard is left unlimited and leans on its cache
// header instead.
func New(handlers *scoringhandlers.ScoringHandlers, writeLimiter *scoringhandlers.TokenRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/score/{token}", func(r chi.Router) {
			r.With(scoringhandlers.RateLimitMiddleware(writeLimiter)).
				Post("/hole", handlers.SubmitHoleScore)
			r.With(scoringhandlers.RateLimitMiddleware(writeLimiter)).
				Post("/submit", handlers.SubmitFinal)
			r.Get("/context", handlers.GetScoreContext)
		})

		r.Route("/public/org/{orgSlug}/event/{eventSlug}", func(r chi.Router) {
			r.Get("/leaderboard", handlers.GetLeaderboard)
			r.Get("/leaderboard/chart.png", handlers.GetLeaderboardChart)
		})

		r.Route("/admin/events/{eventID}", func(r chi.Router) {
			r.Get("/", handlers.GetEventDetail)
			r.Get("/export.xlsx", handlers.ExportLeaderboard)
			r.Post("/status", handlers.SetEventStatus)
			r.Post("/leaderboard-visibility", handlers.SetLeaderboardVisibility)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", handlers.ListTeams)
				r.Post("/", handlers.CreateTeam)
				r.Post("/bulk", handlers.BulkCreateTeams)
				r.Post("/{teamID}/override", handlers.AdminOverrideScore)
				r.Post("/{teamID}/unlock", handlers.AdminUnlockTeam)
			})
		})
	})

	return r
}
