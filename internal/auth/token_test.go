package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestResetTokenRoundTrip(t *testing.T) {
	iss := NewIssuer("dev")

	token, err := iss.IssueResetToken("u1")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	sub, err := iss.VerifyResetToken(token)
	if err != nil {
		t.Fatalf("VerifyResetToken: %v", err)
	}
	if sub != "u1" {
		t.Fatalf("expected sub=u1, got %q", sub)
	}
}

func TestSessionTokenRejectedAsResetToken(t *testing.T) {
	iss := NewIssuer("dev")

	// Same secret, same algorithm, no scope claim.
	token, err := iss.IssueSessionToken("u1", "a@b.com", "student", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	if _, err := iss.VerifyResetToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestWrongScopeRejected(t *testing.T) {
	iss := NewIssuer("dev")

	token, err := iss.Issue(jwt.MapClaims{"sub": "u1", "scope": "email_verify"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := iss.VerifyResetToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExpiredAndTamperedCollapseIntoSameError(t *testing.T) {
	iss := NewIssuer("dev")

	expired, err := iss.Issue(jwt.MapClaims{"sub": "u1", "scope": ScopePasswordReset}, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, expErr := iss.VerifyResetToken(expired)

	other := NewIssuer("other-secret")
	forged, err := other.IssueResetToken("u1")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}
	_, sigErr := iss.VerifyResetToken(forged)

	if !errors.Is(expErr, ErrInvalidToken) || !errors.Is(sigErr, ErrInvalidToken) {
		t.Fatalf("expected both ErrInvalidToken, got exp=%v sig=%v", expErr, sigErr)
	}
	if expErr.Error() != sigErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", expErr, sigErr)
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	iss := NewIssuer("dev")
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := iss.VerifyResetToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestResetTokenMissingSubRejected(t *testing.T) {
	iss := NewIssuer("dev")
	token, err := iss.Issue(jwt.MapClaims{"scope": ScopePasswordReset}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := iss.VerifyResetToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssueDoesNotMutateClaims(t *testing.T) {
	iss := NewIssuer("dev")
	claims := jwt.MapClaims{"sub": "u1"}
	if _, err := iss.Issue(claims, time.Hour); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := claims["exp"]; ok {
		t.Fatalf("Issue mutated caller claims: %v", claims)
	}
}
