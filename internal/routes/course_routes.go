package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/handlers"
	"dojo/internal/middleware"
	"dojo/internal/repository"
)

func RegisterCourseRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer) {
	courses := repository.NewCourseRepository(db)
	courseHandler := handlers.NewCourseHandler(courses)

	router.Route("/courses", func(r chi.Router) {
		r.Get("/", courseHandler.List)
		r.Get("/{id}", courseHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Use(middleware.RequireRole(handlers.RoleSuperAdmin))

			r.Post("/", courseHandler.Create)
			r.Put("/{id}", courseHandler.Update)
			r.Delete("/{id}", courseHandler.Delete)
		})
	})
}
