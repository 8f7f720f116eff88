package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Alcalius/padel-pro/handlers"
	"github.com/Alcalius/padel-pro/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	clubHandler *handlers.ClubHandler,
	tournamentHandler *handlers.TournamentHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/me", userHandler.Me)
		r.Put("/me", userHandler.UpdateProfile)
		r.Post("/me/picture", userHandler.UploadProfilePicture)
		r.Get("/{userID}", userHandler.GetByID)
	})

	router.Route("/clubs", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", clubHandler.Create)
		r.Get("/", clubHandler.List)
		r.Get("/mine", clubHandler.ListMine)

		r.Route("/{clubID}", func(r chi.Router) {
			r.Get("/", clubHandler.GetByID)
			r.Put("/", clubHandler.Update)
			r.Post("/join", clubHandler.Join)
			r.Post("/leave", clubHandler.Leave)
			r.Post("/activate", clubHandler.SetActive)
			r.Post("/logo", clubHandler.UploadLogo)
			r.Get("/members", clubHandler.Members)
			r.Delete("/members/{userID}", clubHandler.RemoveMember)
			r.Get("/tournaments", tournamentHandler.ListByClub)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", tournamentHandler.Create)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByID)
			r.Delete("/", tournamentHandler.Delete)
			r.Post("/complete", tournamentHandler.Complete)
			r.Post("/reopen", tournamentHandler.Reopen)
			r.Get("/ranking", tournamentHandler.Ranking)

			r.Post("/matches", tournamentHandler.AddMatch)
			r.Put("/matches/{matchID}/score", tournamentHandler.SubmitScore)
			r.Delete("/matches/{matchID}", tournamentHandler.DeleteMatch)
		})
	})

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", dashboardHandler.Overview)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
