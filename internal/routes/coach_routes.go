package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/handlers"
	"dojo/internal/middleware"
	"dojo/internal/repository"
	"dojo/internal/services"
)

func RegisterCoachRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer, mailer services.EmailSender, sms *services.SMSSender, s3Config *config.S3Config) {
	coaches := repository.NewCoachRepository(db)
	students := repository.NewStudentRepository(db)
	branches := repository.NewBranchRepository(db)
	coachHandler := handlers.NewCoachHandler(coaches, issuer, cfg)
	mediaHandler := handlers.NewMediaHandler(students, coaches, branches, s3Config)
	resetFlow := handlers.NewPasswordResetFlow(coaches, issuer, mailer, sms, services.CoachResetTheme, cfg)

	router.Route("/coaches", func(r chi.Router) {
		r.Post("/login", coachHandler.Login)
		r.Post("/forgot-password", resetFlow.ForgotPassword)
		r.Post("/reset-password", resetFlow.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))

			r.Get("/", coachHandler.List)
			r.With(middleware.RequireRole(handlers.RoleSuperAdmin)).Post("/", coachHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", coachHandler.Get)
				r.Put("/", coachHandler.Update)
				r.Post("/photo", mediaHandler.UploadCoachPhoto)
				r.With(middleware.RequireRole(handlers.RoleSuperAdmin)).Delete("/", coachHandler.Delete)
			})
		})
	})
}
