package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"dojo/internal/models"
	"dojo/internal/repository"
)

type BranchHandler struct {
	branches repository.BranchRepository
	v        *validator.Validate
}

func NewBranchHandler(branches repository.BranchRepository) *BranchHandler {
	return &BranchHandler{branches: branches, v: validator.New()}
}

// @Tags Branches
// @Summary Create branch
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateBranchRequest true "Create request"
// @Success 201 {object} models.Branch
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/branches/ [post]
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	b := &models.Branch{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Phone:     req.Phone,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.branches.Create(r.Context(), b); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create branch")
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

// @Tags Branches
// @Summary List branches
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/branches/ [get]
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	branches, err := h.branches.List(r.Context(), pagination.limit, pagination.offset)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to list branches")
		return
	}
	if branches == nil {
		branches = []models.Branch{}
	}

	total, err := h.branches.Count(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to count branches")
		return
	}

	writePaginatedResponse(w, http.StatusOK, branches, pagination.page, pagination.pageSize, total)
}

// @Tags Branches
// @Summary Get branch
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} models.Branch
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/branches/{id}/ [get]
func (h *BranchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.branches.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "branch_not_found", "Branch not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to get branch")
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// @Tags Branches
// @Summary Update branch
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param body body models.UpdateBranchRequest true "Update request"
// @Success 200 {object} models.Branch
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/branches/{id}/ [put]
func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.branches.Update(r.Context(), id, &req); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "branch_not_found", "Branch not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to update branch")
		return
	}

	b, err := h.branches.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to load branch")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// @Tags Branches
// @Summary Delete branch
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/branches/{id}/ [delete]
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.branches.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "branch_not_found", "Branch not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to delete branch")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
