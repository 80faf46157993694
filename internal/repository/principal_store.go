package repository

import (
	"context"

	"dojo/internal/models"
)

// PrincipalStore is the slice of a principal repository the password-reset
// flow needs. Students, coaches and superadmins each satisfy it, so the
// flow is written once instead of three times.
type PrincipalStore interface {
	FindPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error)
	ResetPassword(ctx context.Context, id string, passwordHash string) error
}
