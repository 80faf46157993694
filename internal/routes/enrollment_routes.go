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

func RegisterEnrollmentRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer) {
	enrollments := repository.NewEnrollmentRepository(db)
	courses := repository.NewCourseRepository(db)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollments, courses)

	router.Route("/enrollments", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))

		r.Post("/", enrollmentHandler.Create)
		r.Get("/", enrollmentHandler.List)
		r.Put("/{id}/status", enrollmentHandler.UpdateStatus)
		r.With(middleware.RequireRole(handlers.RoleSuperAdmin)).Delete("/{id}", enrollmentHandler.Delete)
	})
}
