package handlers

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"dojo/internal/auth"
	"dojo/internal/config"
	"dojo/internal/repository"
	"dojo/internal/services"
)

type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) Send(to string, subject string, textBody string, htmlBody string) error {
	if m.fail {
		return errTestMailer
	}
	m.sent = append(m.sent, to)
	return nil
}

var errTestMailer = &mailerError{}

type mailerError struct{}

func (e *mailerError) Error() string { return "mailer down" }

const studentEmailQuery = `SELECT id, email, first_name, last_name, phone_number, belt_rank, branch_id, photo_url, password_hash, is_active, created_at, updated_at FROM students WHERE LOWER\(email\) = LOWER\(\$1\)`

var studentRows = []string{"id", "email", "first_name", "last_name", "phone_number", "belt_rank", "branch_id", "photo_url", "password_hash", "is_active", "created_at", "updated_at"}

func forgotRequest(t *testing.T, flow *PasswordResetFlow, email string) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(map[string]any{"email": email})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", bytes.NewReader(b))
	w := httptest.NewRecorder()
	flow.ForgotPassword(w, req)
	return w
}

func resetRequest(t *testing.T, flow *PasswordResetFlow, token string, newPassword string) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(map[string]any{"token": token, "new_password": newPassword})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/reset-password", bytes.NewReader(b))
	w := httptest.NewRecorder()
	flow.ResetPassword(w, req)
	return w
}

func TestForgotPasswordUniformAcknowledgment(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(studentEmailQuery).
		WithArgs("known@dojo.io").
		WillReturnRows(sqlmock.NewRows(studentRows).
			AddRow("u1", "known@dojo.io", "Ana", "Silva", "", "white", nil, "", "hash", true, time.Now().UTC(), nil))
	mock.ExpectQuery(studentEmailQuery).
		WithArgs("unknown@dojo.io").
		WillReturnRows(sqlmock.NewRows(studentRows))

	cfg := &config.Config{JWTSecret: "dev", FrontendURL: "http://localhost:3000"}
	flow := NewPasswordResetFlow(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), &fakeMailer{}, nil, services.StudentResetTheme, cfg)

	wKnown := forgotRequest(t, flow, "known@dojo.io")
	wUnknown := forgotRequest(t, flow, "unknown@dojo.io")

	if wKnown.Code != http.StatusOK || wUnknown.Code != http.StatusOK {
		t.Fatalf("expected 200/200 got %d/%d", wKnown.Code, wUnknown.Code)
	}
	if !bytes.Equal(wKnown.Body.Bytes(), wUnknown.Body.Bytes()) {
		t.Fatalf("acknowledgments differ:\nknown:   %s\nunknown: %s", wKnown.Body.String(), wUnknown.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestForgotPasswordReturnsTokenWhenEnabled(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(studentEmailQuery).
		WithArgs("known@dojo.io").
		WillReturnRows(sqlmock.NewRows(studentRows).
			AddRow("u1", "known@dojo.io", "Ana", "Silva", "", "white", nil, "", "hash", true, time.Now().UTC(), nil))

	cfg := &config.Config{JWTSecret: "dev", FrontendURL: "http://localhost:3000", AuthReturnResetToken: true}
	mailer := &fakeMailer{}
	flow := NewPasswordResetFlow(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), mailer, nil, services.StudentResetTheme, cfg)

	w := forgotRequest(t, flow, "known@dojo.io")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	token, _ := resp["reset_token"].(string)
	if token == "" {
		t.Fatalf("expected reset_token, got %v", resp)
	}
	if resp["email_sent"] != true {
		t.Fatalf("expected email_sent=true, got %v", resp)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "known@dojo.io" {
		t.Fatalf("expected one mail to known@dojo.io, got %v", mailer.sent)
	}

	id, err := auth.NewIssuer(cfg.JWTSecret).VerifyResetToken(token)
	if err != nil || id != "u1" {
		t.Fatalf("returned token does not verify: id=%q err=%v", id, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestForgotPasswordNoTokenForUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(studentEmailQuery).
		WithArgs("unknown@dojo.io").
		WillReturnRows(sqlmock.NewRows(studentRows))

	cfg := &config.Config{JWTSecret: "dev", AuthReturnResetToken: true}
	flow := NewPasswordResetFlow(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), &fakeMailer{}, nil, services.StudentResetTheme, cfg)

	w := forgotRequest(t, flow, "unknown@dojo.io")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if _, ok := resp["reset_token"]; ok {
		t.Fatalf("unknown email must not yield a token, got %v", resp)
	}
}

func TestForgotPasswordMailerFailureStillAcknowledges(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(studentEmailQuery).
		WithArgs("known@dojo.io").
		WillReturnRows(sqlmock.NewRows(studentRows).
			AddRow("u1", "known@dojo.io", "Ana", "Silva", "", "white", nil, "", "hash", true, time.Now().UTC(), nil))

	cfg := &config.Config{JWTSecret: "dev", AuthReturnResetToken: true}
	flow := NewPasswordResetFlow(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), &fakeMailer{fail: true}, nil, services.StudentResetTheme, cfg)

	w := forgotRequest(t, flow, "known@dojo.io")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["email_sent"] != false {
		t.Fatalf("expected email_sent=false, got %v", resp)
	}
	if resp["reset_token"] == nil {
		t.Fatalf("token should still be issued when mail fails, got %v", resp)
	}
}

func TestResetPasswordSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE students SET password_hash = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	cfg := &config.Config{JWTSecret: "dev"}
	issuer := auth.NewIssuer(cfg.JWTSecret)
	flow := NewPasswordResetFlow(repository.NewStudentRepository(db), issuer, &fakeMailer{}, nil, services.StudentResetTheme, cfg)

	token, err := issuer.IssueResetToken("u1")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	w := resetRequest(t, flow, token, "newpassword123")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResetPasswordTokenReusableWithinWindow(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE students SET password_hash`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE students SET password_hash`).WillReturnResult(sqlmock.NewResult(0, 1))

	cfg := &config.Config{JWTSecret: "dev"}
	issuer := auth.NewIssuer(cfg.JWTSecret)
	flow := NewPasswordResetFlow(repository.NewStudentRepository(db), issuer, &fakeMailer{}, nil, services.StudentResetTheme, cfg)

	token, err := issuer.IssueResetToken("u1")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	// Tokens are not single use; a second reset inside the expiry
	// window succeeds with the same token.
	for i := 0; i < 2; i++ {
		w := resetRequest(t, flow, token, "newpassword123")
		if w.Code != http.StatusOK {
			t.Fatalf("reset %d: expected 200 got %d (%s)", i+1, w.Code, w.Body.String())
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResetPasswordRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "dev"}
	issuer := auth.NewIssuer(cfg.JWTSecret)

	sessionToken, err := issuer.IssueSessionToken("u1", "a@b.com", RoleStudent, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}
	expiredToken, err := issuer.Issue(map[string]any{"sub": "u1", "scope": auth.ScopePasswordReset}, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	tamperedToken, err := auth.NewIssuer("other-secret").IssueResetToken("u1")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"session token", sessionToken},
		{"expired token", expiredToken},
		{"tampered token", tamperedToken},
		{"garbage", "not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()

			flow := NewPasswordResetFlow(repository.NewStudentRepository(db), issuer, &fakeMailer{}, nil, services.StudentResetTheme, cfg)

			w := resetRequest(t, flow, tc.token, "newpassword123")
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 got %d (%s)", w.Code, w.Body.String())
			}
			var resp map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &resp)
			if resp["error"] != "invalid_token" {
				t.Fatalf("expected invalid_token, got %v", resp)
			}

			// No database write may happen on a rejected token.
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

// bcryptOf matches an UPDATE argument that is a bcrypt hash of the
// given password.
type bcryptOf struct {
	password string
}

func (m bcryptOf) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s), []byte(m.password)) == nil
}

func TestForgotResetRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(studentEmailQuery).
		WithArgs("known@dojo.io").
		WillReturnRows(sqlmock.NewRows(studentRows).
			AddRow("u1", "known@dojo.io", "Ana", "Silva", "", "white", nil, "", "oldhash", true, time.Now().UTC(), nil))
	mock.ExpectExec(`UPDATE students SET password_hash`).
		WithArgs(bcryptOf{"brand-new-password"}, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	cfg := &config.Config{JWTSecret: "dev", FrontendURL: "http://localhost:3000", AuthReturnResetToken: true}
	flow := NewPasswordResetFlow(repository.NewStudentRepository(db), auth.NewIssuer(cfg.JWTSecret), &fakeMailer{}, nil, services.StudentResetTheme, cfg)

	wForgot := forgotRequest(t, flow, "known@dojo.io")
	if wForgot.Code != http.StatusOK {
		t.Fatalf("forgot: expected 200 got %d (%s)", wForgot.Code, wForgot.Body.String())
	}
	var ackResp map[string]any
	if err := json.Unmarshal(wForgot.Body.Bytes(), &ackResp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	token, _ := ackResp["reset_token"].(string)
	if token == "" {
		t.Fatalf("expected reset_token, got %v", ackResp)
	}

	wReset := resetRequest(t, flow, token, "brand-new-password")
	if wReset.Code != http.StatusOK {
		t.Fatalf("reset: expected 200 got %d (%s)", wReset.Code, wReset.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResetPasswordPrincipalGone(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE students SET password_hash`).WillReturnResult(sqlmock.NewResult(0, 0))

	cfg := &config.Config{JWTSecret: "dev"}
	issuer := auth.NewIssuer(cfg.JWTSecret)
	flow := NewPasswordResetFlow(repository.NewStudentRepository(db), issuer, &fakeMailer{}, nil, services.StudentResetTheme, cfg)

	token, err := issuer.IssueResetToken("u-deleted")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	w := resetRequest(t, flow, token, "newpassword123")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResetPasswordShortPasswordRejected(t *testing.T) {
	cfg := &config.Config{JWTSecret: "dev"}
	issuer := auth.NewIssuer(cfg.JWTSecret)
	flow := NewPasswordResetFlow(nil, issuer, &fakeMailer{}, nil, services.StudentResetTheme, cfg)

	token, err := issuer.IssueResetToken("u1")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	w := resetRequest(t, flow, token, "short")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}
