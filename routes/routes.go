package routes

import (
	"github.com/courtside/badminton-league/handlers"
	"github.com/courtside/badminton-league/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Comment    *handlers.CommentHandler
	Live       *handlers.LiveHandler
	Profile    *handlers.ProfileHandler
	Admin      *handlers.AdminHandler
	Health     *handlers.HealthHandler
	WebSocket  *handlers.WebSocketHandler
}

// SetupRoutes wires every endpoint. Reads are open; mutations climb the
// access ladder: score for score entry, write for setup, admin for user
// management.
func SetupRoutes(router *chi.Mux, sessions *middleware.SessionManager, allowedOrigins []string, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", h.Health.Check)
	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/login", h.Auth.Login)
	router.Post("/auth/logout", h.Auth.Logout)
	router.Group(func(r chi.Router) {
		r.Use(sessions.Authenticate)
		r.Get("/auth/me", h.Auth.Me)
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Просмотр открыт без сессии.
		r.Get("/", h.Tournament.List)
		r.Get("/{tournamentID}", h.Tournament.Get)
		r.Get("/{tournamentID}/standings", h.Tournament.Standings)
		r.Get("/{tournamentID}/reports", h.Tournament.Reports)
		r.Get("/{tournamentID}/comments", h.Comment.List)
		r.Get("/{tournamentID}/likes", h.Comment.ListMatchLikes)
		r.Get("/{tournamentID}/live", h.Live.List)

		r.Group(func(r chi.Router) {
			r.Use(sessions.Authenticate)

			r.Post("/{tournamentID}/comments", h.Comment.Create)
			r.Post("/{tournamentID}/likes", h.Comment.LikeMatch)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireScore)

				r.Patch("/{tournamentID}/scores", h.Tournament.UpdateScore)
				r.Post("/{tournamentID}/live", h.Live.Start)
				r.Delete("/{tournamentID}/live", h.Live.Stop)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWrite)

				r.Post("/", h.Tournament.Create)
				r.Put("/{tournamentID}", h.Tournament.Update)
				r.Delete("/{tournamentID}", h.Tournament.Delete)
				r.Post("/{tournamentID}/logo", h.Tournament.UploadLogo)
			})
		})
	})

	router.Route("/comments", func(r chi.Router) {
		r.Use(sessions.Authenticate)
		r.Post("/{commentID}/like", h.Comment.LikeComment)
	})

	router.Route("/profiles", func(r chi.Router) {
		r.Get("/", h.Profile.List)
		r.With(sessions.Authenticate, middleware.RequireWrite).Put("/", h.Profile.Replace)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(sessions.Authenticate)
		r.Use(middleware.RequireAdmin)
		r.Get("/users", h.Admin.ListUsers)
		r.Patch("/users/{username}", h.Admin.SetAccess)
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
}
