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

type CourseHandler struct {
	courses repository.CourseRepository
	v       *validator.Validate
}

func NewCourseHandler(courses repository.CourseRepository) *CourseHandler {
	return &CourseHandler{courses: courses, v: validator.New()}
}

// @Tags Courses
// @Summary Create course
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateCourseRequest true "Create request"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/courses/ [post]
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	c := &models.Course{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Discipline:  req.Discipline,
		Description: req.Description,
		BranchID:    req.BranchID,
		CoachID:     req.CoachID,
		Schedule:    req.Schedule,
		Capacity:    req.Capacity,
		MonthlyFee:  req.MonthlyFee,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.courses.Create(r.Context(), c); err != nil {
		// 23503: branch or coach id does not exist
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			writeJSONError(w, http.StatusBadRequest, "invalid_reference", "Branch or coach does not exist")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create course")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// @Tags Courses
// @Summary List courses
// @Produce json
// @Param branch_id query string false "Filter by branch"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/courses/ [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	branchID := r.URL.Query().Get("branch_id")

	courses, err := h.courses.List(r.Context(), branchID, pagination.limit, pagination.offset)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to list courses")
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	total, err := h.courses.Count(r.Context(), branchID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to count courses")
		return
	}

	writePaginatedResponse(w, http.StatusOK, courses, pagination.page, pagination.pageSize, total)
}

// @Tags Courses
// @Summary Get course
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id}/ [get]
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "course_not_found", "Course not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to get course")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// @Tags Courses
// @Summary Update course
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param body body models.UpdateCourseRequest true "Update request"
// @Success 200 {object} models.Course
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id}/ [put]
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.courses.Update(r.Context(), id, &req); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "course_not_found", "Course not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to update course")
		return
	}

	c, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to load course")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// @Tags Courses
// @Summary Delete course
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id}/ [delete]
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.courses.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "course_not_found", "Course not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
