package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/models"
	"dojo/internal/repository"
	"dojo/internal/services"
)

// resetAckMessage is returned whether or not the email matched an
// account. Keeping the two cases byte-identical is the user-enumeration
// defense; do not branch on lookup outcome anywhere in the response.
const resetAckMessage = "If an account with that email exists, a password reset link has been sent."

const resetSuccessMessage = "Password has been reset successfully."

// PasswordResetFlow is the single forgot/reset implementation shared by
// students, coaches and superadmins. The principal store and mail theme
// are the only per-role pieces.
type PasswordResetFlow struct {
	store  repository.PrincipalStore
	issuer *auth.Issuer
	mailer services.EmailSender
	sms    *services.SMSSender
	theme  services.ResetMailTheme
	cfg    *config.Config
	v      *validator.Validate
}

func NewPasswordResetFlow(store repository.PrincipalStore, issuer *auth.Issuer, mailer services.EmailSender, sms *services.SMSSender, theme services.ResetMailTheme, cfg *config.Config) *PasswordResetFlow {
	return &PasswordResetFlow{
		store:  store,
		issuer: issuer,
		mailer: mailer,
		sms:    sms,
		theme:  theme,
		cfg:    cfg,
		v:      validator.New(),
	}
}

func (f *PasswordResetFlow) ack(w http.ResponseWriter, token string, emailSent bool, dispatched bool) {
	resp := map[string]any{"message": resetAckMessage}
	if f.cfg.AuthReturnResetToken && dispatched {
		resp["reset_token"] = token
		resp["email_sent"] = emailSent
	}
	writeJSON(w, http.StatusOK, resp)
}

// ForgotPassword handles POST {prefix}/forgot-password.
// @Tags Auth
// @Summary Request a password reset link
// @Accept json
// @Produce json
// @Param body body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/auth/forgot-password [post]
func (f *PasswordResetFlow) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := f.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	p, err := f.store.FindPrincipalByEmail(r.Context(), req.Email)
	if err != nil {
		// Unknown email: same acknowledgment, no token issued.
		f.ack(w, "", false, false)
		return
	}

	token, err := f.issuer.IssueResetToken(p.ID)
	if err != nil {
		log.Printf("password reset: token issue failed for %s: %v", p.ID, err)
		f.ack(w, "", false, false)
		return
	}

	link := services.ResetLink(f.cfg.FrontendURL, token)
	textBody, htmlBody, err := services.RenderResetMail(f.theme, p.FullName, link)
	emailSent := false
	if err != nil {
		log.Printf("password reset: render failed for %s: %v", p.ID, err)
	} else if err := f.mailer.Send(p.Email, f.theme.Subject, textBody, htmlBody); err != nil {
		log.Printf("password reset: email dispatch failed for %s: %v", p.ID, err)
	} else {
		emailSent = true
	}

	if f.sms != nil && p.PhoneNumber != "" {
		if err := f.sms.Send(p.PhoneNumber, "A password reset was requested for your account. Check your email."); err != nil {
			log.Printf("password reset: sms dispatch failed for %s: %v", p.ID, err)
		}
	}

	f.ack(w, token, emailSent, true)
}

// ResetPassword handles POST {prefix}/reset-password.
// @Tags Auth
// @Summary Complete a password reset
// @Accept json
// @Produce json
// @Param body body models.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/auth/reset-password [post]
func (f *PasswordResetFlow) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := f.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	principalID, err := f.issuer.VerifyResetToken(req.Token)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	if err := f.store.ResetPassword(r.Context(), principalID, string(hash)); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Account no longer exists")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	writeJSONMessage(w, http.StatusOK, resetSuccessMessage)
}
