package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"dojo/internal/models"
	"dojo/internal/repository"
)

type StudentHandler struct {
	students repository.StudentRepository
	v        *validator.Validate
}

func NewStudentHandler(students repository.StudentRepository) *StudentHandler {
	return &StudentHandler{students: students, v: validator.New()}
}

// @Tags Students
// @Summary List students
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/students/ [get]
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	students, err := h.students.List(r.Context(), pagination.limit, pagination.offset)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to list students")
		return
	}
	if students == nil {
		students = []models.Student{}
	}

	total, err := h.students.Count(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to count students")
		return
	}

	writePaginatedResponse(w, http.StatusOK, students, pagination.page, pagination.pageSize, total)
}

// @Tags Students
// @Summary Get student
// @Security BearerAuth
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/students/{id}/ [get]
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Student ID is required")
		return
	}

	s, err := h.students.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "student_not_found", "Student not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to get student")
		return
	}

	writeJSON(w, http.StatusOK, s)
}

// @Tags Students
// @Summary Update student
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param body body models.UpdateStudentRequest true "Update request"
// @Success 200 {object} models.Student
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/students/{id}/ [put]
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Student ID is required")
		return
	}

	var req models.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.students.UpdateProfile(r.Context(), id, &req); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "student_not_found", "Student not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to update student")
		return
	}

	s, err := h.students.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to load student")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// @Tags Students
// @Summary Change own password
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param body body models.ChangePasswordRequest true "Change password request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/students/{id}/password [put]
func (h *StudentHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Student ID is required")
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	s, err := h.students.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "student_not_found", "Student not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to load student")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(req.OldPassword)); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_password", "Old password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to change password")
		return
	}

	if err := h.students.UpdatePasswordHash(r.Context(), id, string(hash)); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to change password")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Password changed")
}

// @Tags Students
// @Summary Delete student
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/students/{id}/ [delete]
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Student ID is required")
		return
	}

	if err := h.students.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "student_not_found", "Student not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to delete student")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
