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

func RegisterStudentRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer, s3Config *config.S3Config) {
	students := repository.NewStudentRepository(db)
	coaches := repository.NewCoachRepository(db)
	branches := repository.NewBranchRepository(db)
	studentHandler := handlers.NewStudentHandler(students)
	mediaHandler := handlers.NewMediaHandler(students, coaches, branches, s3Config)

	router.Route("/students", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))

		r.Get("/", studentHandler.List)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", studentHandler.Get)
			r.Put("/", studentHandler.Update)
			r.Put("/password", studentHandler.ChangePassword)
			r.Post("/photo", mediaHandler.UploadStudentPhoto)

			r.With(middleware.RequireRole(handlers.RoleSuperAdmin)).Delete("/", studentHandler.Delete)
		})
	})
}
