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

func RegisterBranchRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer, s3Config *config.S3Config) {
	branches := repository.NewBranchRepository(db)
	students := repository.NewStudentRepository(db)
	coaches := repository.NewCoachRepository(db)
	branchHandler := handlers.NewBranchHandler(branches)
	mediaHandler := handlers.NewMediaHandler(students, coaches, branches, s3Config)

	router.Route("/branches", func(r chi.Router) {
		r.Get("/", branchHandler.List)
		r.Get("/{id}", branchHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Use(middleware.RequireRole(handlers.RoleSuperAdmin))

			r.Post("/", branchHandler.Create)
			r.Put("/{id}", branchHandler.Update)
			r.Delete("/{id}", branchHandler.Delete)
			r.Post("/{id}/image", mediaHandler.UploadBranchImage)
		})
	})
}
