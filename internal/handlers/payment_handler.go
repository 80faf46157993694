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

type PaymentHandler struct {
	payments repository.PaymentRepository
	v        *validator.Validate
}

func NewPaymentHandler(payments repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{payments: payments, v: validator.New()}
}

// @Tags Payments
// @Summary Record a payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreatePaymentRequest true "Payment request"
// @Success 201 {object} models.Payment
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/payments/ [post]
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	p := &models.Payment{
		ID:           uuid.NewString(),
		StudentID:    req.StudentID,
		EnrollmentID: req.EnrollmentID,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Method:       req.Method,
		Status:       models.PaymentStatusPending,
		PeriodMonth:  req.PeriodMonth,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.payments.Create(r.Context(), p); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			writeJSONError(w, http.StatusBadRequest, "invalid_reference", "Student or enrollment does not exist")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to record payment")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// @Tags Payments
// @Summary List payments for a student
// @Security BearerAuth
// @Produce json
// @Param student_id query string true "Student ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/payments/ [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("student_id")
	if studentID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "student_id is required")
		return
	}

	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	payments, err := h.payments.ListByStudent(r.Context(), studentID, pagination.limit, pagination.offset)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to list payments")
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	writeJSON(w, http.StatusOK, payments)
}

// @Tags Payments
// @Summary Mark payment as paid
// @Security BearerAuth
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/payments/{id}/pay [put]
func (h *PaymentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payments.MarkPaid(r.Context(), id, time.Now().UTC()); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "payment_not_found", "Payment not found or not pending")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to update payment")
		return
	}

	p, err := h.payments.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to load payment")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// @Tags Payments
// @Summary Refund a payment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/payments/{id}/refund [put]
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payments.MarkRefunded(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "payment_not_found", "Payment not found or not paid")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to refund payment")
		return
	}

	p, err := h.payments.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to load payment")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
