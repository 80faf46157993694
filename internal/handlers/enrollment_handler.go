package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"dojo/internal/models"
	"dojo/internal/repository"
)

type EnrollmentHandler struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	v           *validator.Validate
}

func NewEnrollmentHandler(enrollments repository.EnrollmentRepository, courses repository.CourseRepository) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollments: enrollments,
		courses:     courses,
		v:           validator.New(),
	}
}

// @Tags Enrollments
// @Summary Enroll a student in a course
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateEnrollmentRequest true "Enrollment request"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/enrollments/ [post]
func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	course, err := h.courses.GetByID(r.Context(), req.CourseID)
	if err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusBadRequest, "invalid_reference", "Course does not exist")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to validate course")
		return
	}

	if course.Capacity > 0 {
		active, err := h.enrollments.CountActiveByCourse(r.Context(), course.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to check capacity")
			return
		}
		if active >= course.Capacity {
			writeJSONError(w, http.StatusConflict, "course_full", "Course is at capacity")
			return
		}
	}

	startDate := time.Now().UTC()
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "start_date must be YYYY-MM-DD")
			return
		}
		startDate = parsed
	}

	e := &models.Enrollment{
		ID:        uuid.NewString(),
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Status:    models.EnrollmentStatusActive,
		StartDate: startDate,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.enrollments.Create(r.Context(), e); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				writeJSONError(w, http.StatusConflict, "already_enrolled", "Student is already enrolled in this course")
				return
			case "23503":
				writeJSONError(w, http.StatusBadRequest, "invalid_reference", "Student or course does not exist")
				return
			}
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create enrollment")
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

// @Tags Enrollments
// @Summary List enrollments for a student
// @Security BearerAuth
// @Produce json
// @Param student_id query string true "Student ID"
// @Success 200 {array} models.Enrollment
// @Router /api/v1/enrollments/ [get]
func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("student_id")
	courseID := r.URL.Query().Get("course_id")

	var (
		enrollments []models.Enrollment
		err         error
	)
	switch {
	case studentID != "":
		enrollments, err = h.enrollments.ListByStudent(r.Context(), studentID)
	case courseID != "":
		enrollments, err = h.enrollments.ListByCourse(r.Context(), courseID)
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "student_id or course_id is required")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to list enrollments")
		return
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}

	writeJSON(w, http.StatusOK, enrollments)
}

// @Tags Enrollments
// @Summary Update enrollment status
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param body body models.UpdateEnrollmentStatusRequest true "Status update"
// @Success 200 {object} models.Enrollment
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/enrollments/{id}/status [put]
func (h *EnrollmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateEnrollmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.enrollments.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "enrollment_not_found", "Enrollment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to update enrollment")
		return
	}

	e, err := h.enrollments.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to load enrollment")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// @Tags Enrollments
// @Summary Delete enrollment
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/enrollments/{id}/ [delete]
func (h *EnrollmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.enrollments.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "enrollment_not_found", "Enrollment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to delete enrollment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
