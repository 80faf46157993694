package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/handlers"
	"dojo/internal/repository"
	"dojo/internal/services"
)

func RegisterAuthRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer, mailer services.EmailSender, sms *services.SMSSender) {
	students := repository.NewStudentRepository(db)
	authHandler := handlers.NewAuthHandler(students, issuer, cfg)
	resetFlow := handlers.NewPasswordResetFlow(students, issuer, mailer, sms, services.StudentResetTheme, cfg)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", resetFlow.ForgotPassword)
		r.Post("/reset-password", resetFlow.ResetPassword)
	})
}
