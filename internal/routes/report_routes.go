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

func RegisterReportRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer) {
	reports := repository.NewReportRepository(db)
	reportHandler := handlers.NewReportHandler(reports)

	router.Route("/reports", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Use(middleware.RequireRole(handlers.RoleSuperAdmin))

		r.Get("/enrollments", reportHandler.EnrollmentsPerCourse)
		r.Get("/revenue", reportHandler.RevenueByBranch)
		r.Get("/students", reportHandler.StudentsPerBranch)
	})
}
