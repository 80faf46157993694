package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/repository"
)

func TestSignupSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO students`).WillReturnRows(
		sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()),
	)

	cfg := &config.Config{JWTSecret: "dev"}
	h := NewAuthHandler(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), cfg)

	payload := map[string]any{
		"email":      "a@b.com",
		"password":   "password123",
		"first_name": "Ana",
		"last_name":  "Silva",
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO students`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "students_email_key"})

	cfg := &config.Config{JWTSecret: "dev"}
	h := NewAuthHandler(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), cfg)

	payload := map[string]any{
		"email":      "a@b.com",
		"password":   "password123",
		"first_name": "Ana",
		"last_name":  "Silva",
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "email_taken" {
		t.Fatalf("expected email_taken, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword: %v", err)
	}

	mock.ExpectQuery(studentEmailQuery).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(studentRows).
			AddRow("u1", "a@b.com", "Ana", "Silva", "", "white", nil, "", string(hash), true, time.Now().UTC(), nil))

	cfg := &config.Config{JWTSecret: "dev", JWTExpiresInSeconds: 3600}
	h := NewAuthHandler(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), cfg)

	payload := map[string]any{"email": "a@b.com", "password": "password123"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] == nil {
		t.Fatalf("expected access_token, got %v", resp)
	}
	if resp["role"] != RoleStudent {
		t.Fatalf("expected role=student, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	mock.ExpectQuery(studentEmailQuery).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(studentRows).
			AddRow("u1", "a@b.com", "Ana", "Silva", "", "white", nil, "", string(hash), true, time.Now().UTC(), nil))

	cfg := &config.Config{JWTSecret: "dev"}
	h := NewAuthHandler(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), cfg)

	payload := map[string]any{"email": "a@b.com", "password": "wrongpassword"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %v", resp)
	}
}

func TestLoginVerboseErrorsDistinguishUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(studentEmailQuery).
		WithArgs("nobody@b.com").
		WillReturnRows(sqlmock.NewRows(studentRows))

	cfg := &config.Config{JWTSecret: "dev", AuthVerboseErrors: true}
	h := NewAuthHandler(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), cfg)

	payload := map[string]any{"email": "nobody@b.com", "password": "password123"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "invalid_email" {
		t.Fatalf("expected invalid_email, got %v", resp)
	}
}
