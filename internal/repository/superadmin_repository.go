package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dojo/internal/models"
)

type SuperAdminRepository interface {
	Create(ctx context.Context, admin *models.SuperAdmin) error
	GetByID(ctx context.Context, id string) (*models.SuperAdmin, error)
	GetByEmail(ctx context.Context, email string) (*models.SuperAdmin, error)
	List(ctx context.Context) ([]models.SuperAdmin, error)
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error

	PrincipalStore
}

type superAdminRepository struct {
	db *sql.DB
}

func NewSuperAdminRepository(db *sql.DB) SuperAdminRepository {
	return &superAdminRepository{db: db}
}

const superAdminColumns = `id, email, full_name, password_hash, is_active, created_at, updated_at`

func scanSuperAdmin(row *sql.Row) (*models.SuperAdmin, error) {
	var a models.SuperAdmin
	var updatedAt sql.NullTime
	err := row.Scan(&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("superadmin not found")
		}
		return nil, err
	}
	if updatedAt.Valid {
		a.UpdatedAt = &updatedAt.Time
	}
	return &a, nil
}

func (r *superAdminRepository) Create(ctx context.Context, admin *models.SuperAdmin) error {
	query := `
		INSERT INTO superadmins (id, email, full_name, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, admin.ID, admin.Email, admin.FullName, admin.PasswordHash, admin.IsActive, admin.CreatedAt).Scan(&admin.CreatedAt)
	return err
}

func (r *superAdminRepository) GetByID(ctx context.Context, id string) (*models.SuperAdmin, error) {
	query := `SELECT ` + superAdminColumns + ` FROM superadmins WHERE id = $1`
	return scanSuperAdmin(r.db.QueryRowContext(ctx, query, id))
}

func (r *superAdminRepository) GetByEmail(ctx context.Context, email string) (*models.SuperAdmin, error) {
	query := `SELECT ` + superAdminColumns + ` FROM superadmins WHERE LOWER(email) = LOWER($1)`
	return scanSuperAdmin(r.db.QueryRowContext(ctx, query, email))
}

func (r *superAdminRepository) List(ctx context.Context) ([]models.SuperAdmin, error) {
	query := `
		SELECT id, email, full_name, is_active, created_at
		FROM superadmins
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []models.SuperAdmin
	for rows.Next() {
		var a models.SuperAdmin
		if err := rows.Scan(&a.ID, &a.Email, &a.FullName, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}

	return admins, rows.Err()
}

func (r *superAdminRepository) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	query := `UPDATE superadmins SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("superadmin not found")
	}
	return nil
}

func (r *superAdminRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM superadmins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("superadmin not found")
	}
	return nil
}

func (r *superAdminRepository) FindPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error) {
	a, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.Principal{
		ID:       a.ID,
		Email:    a.Email,
		FullName: a.FullName,
		IsActive: a.IsActive,
	}, nil
}

func (r *superAdminRepository) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	return r.UpdatePasswordHash(ctx, id, passwordHash)
}
