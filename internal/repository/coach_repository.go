package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dojo/internal/models"
)

type CoachRepository interface {
	Create(ctx context.Context, coach *models.Coach) error
	GetByID(ctx context.Context, id string) (*models.Coach, error)
	GetByEmail(ctx context.Context, email string) (*models.Coach, error)
	List(ctx context.Context, limit int, offset int) ([]models.Coach, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id string, req *models.UpdateCoachRequest) error
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
	UpdatePhotoURL(ctx context.Context, id string, photoURL string) error
	Delete(ctx context.Context, id string) error

	PrincipalStore
}

type coachRepository struct {
	db *sql.DB
}

func NewCoachRepository(db *sql.DB) CoachRepository {
	return &coachRepository{db: db}
}

const coachColumns = `id, first_name, last_name, contact_email, contact_phone, specialty, branch_id, photo_url, password_hash, is_active, created_at, updated_at`

func scanCoach(row *sql.Row) (*models.Coach, error) {
	var c models.Coach
	var updatedAt sql.NullTime
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.ContactEmail, &c.ContactPhone, &c.Specialty, &c.BranchID, &c.PhotoURL, &c.PasswordHash, &c.IsActive, &c.CreatedAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("coach not found")
		}
		return nil, err
	}
	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}
	return &c, nil
}

func (r *coachRepository) Create(ctx context.Context, coach *models.Coach) error {
	query := `
		INSERT INTO coaches (id, first_name, last_name, contact_email, contact_phone, specialty, branch_id, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, coach.ID, coach.FirstName, coach.LastName, coach.ContactEmail, coach.ContactPhone, coach.Specialty, coach.BranchID, coach.PasswordHash, coach.IsActive, coach.CreatedAt).Scan(&coach.CreatedAt)
	return err
}

func (r *coachRepository) GetByID(ctx context.Context, id string) (*models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE id = $1`
	return scanCoach(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail looks up by contact_email, the coach counterpart of the
// students.email column.
func (r *coachRepository) GetByEmail(ctx context.Context, email string) (*models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE LOWER(contact_email) = LOWER($1)`
	return scanCoach(r.db.QueryRowContext(ctx, query, email))
}

func (r *coachRepository) List(ctx context.Context, limit int, offset int) ([]models.Coach, error) {
	query := `
		SELECT id, first_name, last_name, contact_email, contact_phone, specialty, branch_id, photo_url, is_active, created_at
		FROM coaches
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coaches []models.Coach
	for rows.Next() {
		var c models.Coach
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.ContactEmail, &c.ContactPhone, &c.Specialty, &c.BranchID, &c.PhotoURL, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		coaches = append(coaches, c)
	}

	return coaches, rows.Err()
}

func (r *coachRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coaches`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *coachRepository) Update(ctx context.Context, id string, req *models.UpdateCoachRequest) error {
	query := `
		UPDATE coaches
		SET first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			contact_email = COALESCE($3, contact_email),
			contact_phone = COALESCE($4, contact_phone),
			specialty = COALESCE($5, specialty),
			branch_id = COALESCE($6, branch_id),
			is_active = COALESCE($7, is_active),
			updated_at = NOW()
		WHERE id = $8
		RETURNING id
	`

	var outID string
	err := r.db.QueryRowContext(ctx, query, req.FirstName, req.LastName, req.ContactEmail, req.ContactPhone, req.Specialty, req.BranchID, req.IsActive, id).Scan(&outID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("coach not found")
		}
		return err
	}
	return nil
}

func (r *coachRepository) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	query := `UPDATE coaches SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("coach not found")
	}
	return nil
}

func (r *coachRepository) UpdatePhotoURL(ctx context.Context, id string, photoURL string) error {
	query := `UPDATE coaches SET photo_url = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, photoURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("coach not found")
	}
	return nil
}

func (r *coachRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("coach not found")
	}
	return nil
}

func (r *coachRepository) FindPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error) {
	c, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.Principal{
		ID:          c.ID,
		Email:       c.ContactEmail,
		FullName:    c.FullName(),
		PhoneNumber: c.ContactPhone,
		IsActive:    c.IsActive,
	}, nil
}

func (r *coachRepository) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	return r.UpdatePasswordHash(ctx, id, passwordHash)
}
