package handlers

import (
	"net/http"

	"dojo/internal/models"
	"dojo/internal/repository"
)

type ReportHandler struct {
	reports repository.ReportRepository
}

func NewReportHandler(reports repository.ReportRepository) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// @Tags Reports
// @Summary Active enrollments per course
// @Security BearerAuth
// @Produce json
// @Param branch_id query string false "Filter by branch"
// @Success 200 {array} models.CourseEnrollmentCount
// @Router /api/v1/reports/enrollments [get]
func (h *ReportHandler) EnrollmentsPerCourse(w http.ResponseWriter, r *http.Request) {
	out, err := h.reports.EnrollmentsPerCourse(r.Context(), r.URL.Query().Get("branch_id"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to build report")
		return
	}
	if out == nil {
		out = []models.CourseEnrollmentCount{}
	}
	writeJSON(w, http.StatusOK, out)
}

// @Tags Reports
// @Summary Revenue per branch
// @Security BearerAuth
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {array} models.BranchRevenue
// @Router /api/v1/reports/revenue [get]
func (h *ReportHandler) RevenueByBranch(w http.ResponseWriter, r *http.Request) {
	out, err := h.reports.RevenueByBranch(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to build report")
		return
	}
	if out == nil {
		out = []models.BranchRevenue{}
	}
	writeJSON(w, http.StatusOK, out)
}

// @Tags Reports
// @Summary Student counts per branch
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.BranchStudentCount
// @Router /api/v1/reports/students [get]
func (h *ReportHandler) StudentsPerBranch(w http.ResponseWriter, r *http.Request) {
	out, err := h.reports.StudentsPerBranch(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to build report")
		return
	}
	if out == nil {
		out = []models.BranchStudentCount{}
	}
	writeJSON(w, http.StatusOK, out)
}
