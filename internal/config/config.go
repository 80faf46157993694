// internal/config/config.go
package config

import (
	"net/url"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string

	// JWTSecret is the single signing secret shared by session and
	// password-reset tokens. Every issuer/verifier must read it from
	// here, never from the environment directly.
	JWTSecret           string
	JWTExpiresInSeconds int64

	FrontendURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool

	// EmailWebhookURL, when set, routes outgoing mail through the relay
	// endpoint instead of direct SMTP.
	EmailWebhookURL string
	SMSWebhookURL   string

	AuthVerboseErrors bool

	// AuthReturnResetToken echoes the reset token and email_sent flag in
	// the forgot-password response. Test scaffolding only; Load forces it
	// off in production regardless of the environment variable.
	AuthReturnResetToken bool
}

func Load() *Config {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "postgres")
		dbName := getEnv("PSQL_DB_NAME", "dojo")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	environment := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          environment,
		DatabaseURL:          databaseURL,
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiresInSeconds:  getEnvInt64("JWT_EXPIRES_IN_SECONDS", 86400),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getEnv("SMTP_PORT", "587"),
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPassword:         os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:             getEnv("SMTP_FROM", "no-reply@dojo.local"),
		SMTPUseTLS:           getEnvBool("SMTP_USE_TLS", false),
		EmailWebhookURL:      os.Getenv("EMAIL_WEBHOOK_URL"),
		SMSWebhookURL:        os.Getenv("SMS_WEBHOOK_URL"),
		AuthVerboseErrors:    getEnvBool("AUTH_VERBOSE_ERRORS", false),
		AuthReturnResetToken: getEnvBool("AUTH_RETURN_RESET_TOKEN", false),
	}

	if environment == "production" {
		cfg.AuthReturnResetToken = false
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
