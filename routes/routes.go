package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/torneoveteranos/tournament-system/handlers"
	"github.com/torneoveteranos/tournament-system/middleware"
	"github.com/torneoveteranos/tournament-system/models"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	standingsHandler *handlers.StandingsHandler,
	matchHandler *handlers.MatchHandler,
	phase2Handler *handlers.Phase2Handler,
	statsHandler *handlers.StatsHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.Register)
		r.Post("/auth/signin", authHandler.Login)

		r.Get("/standings", standingsHandler.GetStandings)
		r.Get("/schedule", standingsHandler.GetSchedule)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/scorers", statsHandler.GetScorers)
			r.Get("/cards", statsHandler.GetCards)
			r.Get("/offense", statsHandler.GetOffense)
			r.Get("/defense", statsHandler.GetDefense)
			r.Get("/summary", statsHandler.GetSummary)
		})

		r.Get("/teams", teamHandler.ListTeams)
		r.Get("/teams/{teamID}", teamHandler.GetTeam)
		r.Get("/teams/{teamID}/players", playerHandler.ListByTeam)

		r.Route("/phase2", func(r chi.Router) {
			r.Get("/groups", phase2Handler.GetGroups)
			r.Get("/schedule", phase2Handler.GetSchedule)
			r.Get("/standings", phase2Handler.GetStandings)
		})

		// Admin-only mutations.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireRole(string(models.RoleAdmin)))

			r.Post("/matches/{matchID}/result", matchHandler.SubmitResult)
			r.Post("/phase2/init", phase2Handler.Initialize)
			r.Post("/teams/{teamID}/crest", teamHandler.UploadCrest)
			r.Post("/players", playerHandler.Create)
			r.Put("/players/{playerID}", playerHandler.Rename)
			r.Delete("/players/{playerID}", playerHandler.Delete)
		})
	})

	router.Get("/ws/standings", webSocketHandler.ServeStandings)
}
