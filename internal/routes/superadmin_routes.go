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

func RegisterSuperAdminRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer, mailer services.EmailSender, sms *services.SMSSender) {
	admins := repository.NewSuperAdminRepository(db)
	adminHandler := handlers.NewSuperAdminHandler(admins, issuer, cfg)
	resetFlow := handlers.NewPasswordResetFlow(admins, issuer, mailer, sms, services.SuperAdminResetTheme, cfg)

	router.Route("/superadmin", func(r chi.Router) {
		r.Post("/login", adminHandler.Login)
		r.Post("/forgot-password", resetFlow.ForgotPassword)
		r.Post("/reset-password", resetFlow.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Use(middleware.RequireRole(handlers.RoleSuperAdmin))

			r.Get("/", adminHandler.List)
			r.Post("/", adminHandler.Create)
		})
	})
}
