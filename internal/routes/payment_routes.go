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

func RegisterPaymentRoutes(router chi.Router, db *sql.DB, cfg *config.Config, issuer *auth.Issuer) {
	payments := repository.NewPaymentRepository(db)
	paymentHandler := handlers.NewPaymentHandler(payments)

	router.Route("/payments", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))

		r.Post("/", paymentHandler.Create)
		r.Get("/", paymentHandler.List)
		r.Put("/{id}/pay", paymentHandler.MarkPaid)
		r.With(middleware.RequireRole(handlers.RoleSuperAdmin)).Put("/{id}/refund", paymentHandler.Refund)
	})
}
