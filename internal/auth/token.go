package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers signature mismatch, malformed input, expiry and
// wrong scope. Callers must not learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

const (
	// ScopePasswordReset marks a token as usable only for completing a
	// password reset. Session tokens carry no scope claim.
	ScopePasswordReset = "password_reset"

	// ResetTokenTTL is the fixed lifetime of a password-reset token.
	ResetTokenTTL = 15 * time.Minute
)

// Issuer signs and verifies HS256 tokens with a single process-wide
// secret. Session auth and the password-reset flow share one instance.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs the given claims with exp set to now + ttl. The claims map
// is not mutated.
func (i *Issuer) Issue(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	merged := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range claims {
		merged[k] = v
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, merged)
	return token.SignedString(i.secret)
}

// Verify decodes and checks signature and expiry. Any failure collapses
// into ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueSessionToken builds a normal access token for a logged-in
// principal. No scope claim is set.
func (i *Issuer) IssueSessionToken(principalID, email, role string, ttl time.Duration) (string, error) {
	return i.Issue(jwt.MapClaims{
		"sub":   principalID,
		"email": email,
		"role":  role,
	}, ttl)
}

// IssueResetToken builds a password-reset token bound to the principal id.
func (i *Issuer) IssueResetToken(principalID string) (string, error) {
	return i.Issue(jwt.MapClaims{
		"sub":   principalID,
		"scope": ScopePasswordReset,
	}, ResetTokenTTL)
}

// VerifyResetToken verifies signature and expiry and requires
// scope == "password_reset". A valid session token signed with the same
// secret is rejected here: the scope claim is the only thing keeping the
// two token kinds apart. Returns the principal id from sub.
func (i *Issuer) VerifyResetToken(tokenString string) (string, error) {
	claims, err := i.Verify(tokenString)
	if err != nil {
		return "", err
	}
	scope, _ := claims["scope"].(string)
	if scope != ScopePasswordReset {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
