package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/models"
	"dojo/internal/repository"
)

const (
	RoleStudent    = "student"
	RoleCoach      = "coach"
	RoleSuperAdmin = "superadmin"
)

// AuthHandler covers student signup and login. Coaches and superadmins
// have their own login handlers; all three share the same Issuer.
type AuthHandler struct {
	students repository.StudentRepository
	issuer   *auth.Issuer
	cfg      *config.Config
	v        *validator.Validate
}

func NewAuthHandler(students repository.StudentRepository, issuer *auth.Issuer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		students: students,
		issuer:   issuer,
		cfg:      cfg,
		v:        validator.New(),
	}
}

// @Tags Auth
// @Summary Student signup
// @Accept json
// @Produce json
// @Param body body models.SignupRequest true "Signup request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "signup_failed", "Failed to create account")
		return
	}

	s := &models.Student{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		BranchID:     req.BranchID,
		BeltRank:     "white",
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.students.Create(r.Context(), s); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusBadRequest, "email_taken", "An account with that email already exists")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "signup_failed", "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": s.ID, "email": s.Email, "created_at": s.CreatedAt})
}

// @Tags Auth
// @Summary Student login
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	s, err := h.students.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if h.cfg.AuthVerboseErrors {
			writeJSONError(w, http.StatusUnauthorized, "invalid_email", "Email not found")
			return
		}
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(req.Password)); err != nil {
		if h.cfg.AuthVerboseErrors {
			writeJSONError(w, http.StatusUnauthorized, "invalid_password", "Password is incorrect")
			return
		}
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	writeLoginResponse(w, h.issuer, h.cfg, s.ID, s.Email, s.FullName(), RoleStudent)
}

func writeLoginResponse(w http.ResponseWriter, issuer *auth.Issuer, cfg *config.Config, id, email, fullName, role string) {
	expiresIn := cfg.JWTExpiresInSeconds
	if expiresIn <= 0 {
		expiresIn = 86400
	}

	signed, err := issuer.IssueSessionToken(id, email, role, time.Duration(expiresIn)*time.Second)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "login_failed", "Failed to login")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   expiresIn,
		ID:          id,
		Email:       email,
		FullName:    fullName,
		Role:        role,
	})
}
