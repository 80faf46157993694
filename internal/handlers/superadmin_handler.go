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

type SuperAdminHandler struct {
	admins repository.SuperAdminRepository
	issuer *auth.Issuer
	cfg    *config.Config
	v      *validator.Validate
}

func NewSuperAdminHandler(admins repository.SuperAdminRepository, issuer *auth.Issuer, cfg *config.Config) *SuperAdminHandler {
	return &SuperAdminHandler{
		admins: admins,
		issuer: issuer,
		cfg:    cfg,
		v:      validator.New(),
	}
}

// @Tags SuperAdmin
// @Summary Superadmin login
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/superadmin/login [post]
func (h *SuperAdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	a, err := h.admins.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	writeLoginResponse(w, h.issuer, h.cfg, a.ID, a.Email, a.FullName, RoleSuperAdmin)
}

// @Tags SuperAdmin
// @Summary Create superadmin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateSuperAdminRequest true "Create request"
// @Success 201 {object} models.SuperAdmin
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/superadmin/ [post]
func (h *SuperAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSuperAdminRequest
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
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create superadmin")
		return
	}

	a := &models.SuperAdmin{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.admins.Create(r.Context(), a); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusBadRequest, "email_taken", "A superadmin with that email already exists")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create superadmin")
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

// @Tags SuperAdmin
// @Summary List superadmins
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.SuperAdmin
// @Router /api/v1/superadmin/ [get]
func (h *SuperAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.List(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to list superadmins")
		return
	}
	if admins == nil {
		admins = []models.SuperAdmin{}
	}
	writeJSON(w, http.StatusOK, admins)
}
