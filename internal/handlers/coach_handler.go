package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/models"
	"dojo/internal/repository"
)

type CoachHandler struct {
	coaches repository.CoachRepository
	issuer  *auth.Issuer
	cfg     *config.Config
	v       *validator.Validate
}

func NewCoachHandler(coaches repository.CoachRepository, issuer *auth.Issuer, cfg *config.Config) *CoachHandler {
	return &CoachHandler{
		coaches: coaches,
		issuer:  issuer,
		cfg:     cfg,
		v:       validator.New(),
	}
}

// @Tags Coaches
// @Summary Coach login
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/coaches/login [post]
func (h *CoachHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	c, err := h.coaches.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(req.Password)); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	writeLoginResponse(w, h.issuer, h.cfg, c.ID, c.ContactEmail, c.FullName(), RoleCoach)
}

// @Tags Coaches
// @Summary Create coach
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateCoachRequest true "Create coach request"
// @Success 201 {object} models.Coach
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/coaches/ [post]
func (h *CoachHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCoachRequest
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
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create coach")
		return
	}

	c := &models.Coach{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Specialty:    req.Specialty,
		BranchID:     req.BranchID,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.coaches.Create(r.Context(), c); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusBadRequest, "email_taken", "A coach with that email already exists")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create coach")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// @Tags Coaches
// @Summary List coaches
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/coaches/ [get]
func (h *CoachHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	coaches, err := h.coaches.List(r.Context(), pagination.limit, pagination.offset)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to list coaches")
		return
	}
	if coaches == nil {
		coaches = []models.Coach{}
	}

	total, err := h.coaches.Count(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to count coaches")
		return
	}

	writePaginatedResponse(w, http.StatusOK, coaches, pagination.page, pagination.pageSize, total)
}

// @Tags Coaches
// @Summary Get coach
// @Produce json
// @Param id path string true "Coach ID"
// @Success 200 {object} models.Coach
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/coaches/{id}/ [get]
func (h *CoachHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Coach ID is required")
		return
	}

	c, err := h.coaches.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "coach_not_found", "Coach not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to get coach")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// @Tags Coaches
// @Summary Update coach
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Coach ID"
// @Param body body models.UpdateCoachRequest true "Update request"
// @Success 200 {object} models.Coach
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/coaches/{id}/ [put]
func (h *CoachHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Coach ID is required")
		return
	}

	var req models.UpdateCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.coaches.Update(r.Context(), id, &req); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "coach_not_found", "Coach not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to update coach")
		return
	}

	c, err := h.coaches.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to load coach")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// @Tags Coaches
// @Summary Delete coach
// @Security BearerAuth
// @Param id path string true "Coach ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/coaches/{id}/ [delete]
func (h *CoachHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Coach ID is required")
		return
	}

	if err := h.coaches.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "coach_not_found", "Coach not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to delete coach")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
