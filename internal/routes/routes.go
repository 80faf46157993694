// internal/routes/routes.go
package routes

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/services"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "dojo api", "status": "ok"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"status": "ok"}
		dbStatus := map[string]any{"status": "ok"}
		status := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			dbStatus["status"] = "down"
			dbStatus["error"] = err.Error()
			resp["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
		resp["db"] = dbStatus
		writeJSON(w, status, resp)
	})

	issuer := auth.NewIssuer(cfg.JWTSecret)
	mailer := newMailer(cfg)
	var sms *services.SMSSender
	if cfg.SMSWebhookURL != "" {
		sms = services.NewSMSSender(cfg.SMSWebhookURL)
	}

	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, db, cfg, issuer, mailer, sms)
		RegisterStudentRoutes(r, db, cfg, issuer, s3Config)
		RegisterCoachRoutes(r, db, cfg, issuer, mailer, sms, s3Config)
		RegisterSuperAdminRoutes(r, db, cfg, issuer, mailer, sms)
		RegisterBranchRoutes(r, db, cfg, issuer, s3Config)
		RegisterCourseRoutes(r, db, cfg, issuer)
		RegisterEnrollmentRoutes(r, db, cfg, issuer)
		RegisterPaymentRoutes(r, db, cfg, issuer)
		RegisterReportRoutes(r, db, cfg, issuer)
	})

	RegisterSwaggerRoutes(r)

	return r
}

// newMailer prefers the webhook relay when configured, falling back to
// direct SMTP.
func newMailer(cfg *config.Config) services.EmailSender {
	if cfg.EmailWebhookURL != "" {
		return services.NewWebhookSender(cfg.EmailWebhookURL)
	}
	return &services.SMTPSender{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPassword,
		From:   cfg.SMTPFrom,
		UseTLS: cfg.SMTPUseTLS,
	}
}
