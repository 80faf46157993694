package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"dojo/internal/config"
	"dojo/internal/repository"
)

// MediaHandler uploads profile photos and branch images to S3 and stores
// the resulting public URL on the owning row.
type MediaHandler struct {
	students repository.StudentRepository
	coaches  repository.CoachRepository
	branches repository.BranchRepository
	s3Client *s3.Client
	bucket   string
	baseURL  string
}

func NewMediaHandler(students repository.StudentRepository, coaches repository.CoachRepository, branches repository.BranchRepository, s3Config *config.S3Config) *MediaHandler {
	h := &MediaHandler{
		students: students,
		coaches:  coaches,
		branches: branches,
	}
	if s3Config != nil {
		h.s3Client = s3Config.Client
		h.bucket = s3Config.Bucket
		h.baseURL = strings.TrimRight(s3Config.PublicBaseURL, "/")
	}
	return h
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

func (h *MediaHandler) upload(r *http.Request, prefix string) (string, error) {
	if h.s3Client == nil {
		return "", fmt.Errorf("media storage is not configured")
	}

	const maxMemory = 10 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return "", fmt.Errorf("failed to parse form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("file is required")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported file type %s", ext)
	}

	key := prefix + "/" + uuid.NewString() + ext
	uploader := manager.NewUploader(h.s3Client)
	if _, err := uploader.Upload(r.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentTypeForExt(ext, header)),
	}); err != nil {
		log.Printf("media upload failed for %s: %v", key, err)
		return "", fmt.Errorf("upload failed")
	}

	return h.baseURL + "/" + key, nil
}

func contentTypeForExt(ext string, header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	switch ext {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// @Tags Media
// @Summary Upload a student profile photo
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Student ID"
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/students/{id}/photo [post]
func (h *MediaHandler) UploadStudentPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	url, err := h.upload(r, "students")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "upload_failed", err.Error())
		return
	}

	if err := h.students.UpdatePhotoURL(r.Context(), id, url); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "student_not_found", "Student not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to save photo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"photo_url": url})
}

// @Tags Media
// @Summary Upload a coach profile photo
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Coach ID"
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/coaches/{id}/photo [post]
func (h *MediaHandler) UploadCoachPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	url, err := h.upload(r, "coaches")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "upload_failed", err.Error())
		return
	}

	if err := h.coaches.UpdatePhotoURL(r.Context(), id, url); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "coach_not_found", "Coach not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to save photo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"photo_url": url})
}

// @Tags Media
// @Summary Upload a branch image
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Branch ID"
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/branches/{id}/image [post]
func (h *MediaHandler) UploadBranchImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	url, err := h.upload(r, "branches")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "upload_failed", err.Error())
		return
	}

	if err := h.branches.UpdateImageURL(r.Context(), id, url); err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "branch_not_found", "Branch not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to save image")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"image_url": url})
}
