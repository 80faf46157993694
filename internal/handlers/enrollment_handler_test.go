package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"dojo/internal/repository"
)

const courseByIDQuery = `SELECT id, name, discipline, description, branch_id, coach_id, schedule, capacity, monthly_fee, is_active, created_at FROM courses WHERE id = \$1`

var courseRows = []string{"id", "name", "discipline", "description", "branch_id", "coach_id", "schedule", "capacity", "monthly_fee", "is_active", "created_at"}

func enrollRequest(t *testing.T, h *EnrollmentHandler, studentID, courseID string) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(map[string]any{"student_id": studentID, "course_id": courseID})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enrollments/", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Create(w, req)
	return w
}

func TestEnrollmentCreateSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	studentID := uuid.NewString()
	courseID := uuid.NewString()

	mock.ExpectQuery(courseByIDQuery).
		WithArgs(courseID).
		WillReturnRows(sqlmock.NewRows(courseRows).
			AddRow(courseID, "Karate Basics", "karate", "", uuid.NewString(), nil, "Mon/Wed 18:00", 20, 90.0, true, time.Now().UTC()))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE course_id = \$1 AND status = 'active'`).
		WithArgs(courseID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`INSERT INTO enrollments`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

	h := NewEnrollmentHandler(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db))

	w := enrollRequest(t, h, studentID, courseID)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEnrollmentCreateCourseFull(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	courseID := uuid.NewString()

	mock.ExpectQuery(courseByIDQuery).
		WithArgs(courseID).
		WillReturnRows(sqlmock.NewRows(courseRows).
			AddRow(courseID, "Karate Basics", "karate", "", uuid.NewString(), nil, "", 10, 90.0, true, time.Now().UTC()))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE course_id = \$1 AND status = 'active'`).
		WithArgs(courseID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	h := NewEnrollmentHandler(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db))

	w := enrollRequest(t, h, uuid.NewString(), courseID)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "course_full" {
		t.Fatalf("expected course_full, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEnrollmentCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	courseID := uuid.NewString()

	mock.ExpectQuery(courseByIDQuery).
		WithArgs(courseID).
		WillReturnRows(sqlmock.NewRows(courseRows).
			AddRow(courseID, "Karate Basics", "karate", "", uuid.NewString(), nil, "", 0, 90.0, true, time.Now().UTC()))
	mock.ExpectQuery(`INSERT INTO enrollments`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "enrollments_student_id_course_id_key"})

	h := NewEnrollmentHandler(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db))

	w := enrollRequest(t, h, uuid.NewString(), courseID)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "already_enrolled" {
		t.Fatalf("expected already_enrolled, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
