package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dojo/internal/models"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context, limit int, offset int) ([]models.Student, error)
	Count(ctx context.Context) (int, error)
	UpdateProfile(ctx context.Context, id string, req *models.UpdateStudentRequest) error
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
	UpdatePhotoURL(ctx context.Context, id string, photoURL string) error
	Delete(ctx context.Context, id string) error

	PrincipalStore
}

type studentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) StudentRepository {
	return &studentRepository{db: db}
}

const studentColumns = `id, email, first_name, last_name, phone_number, belt_rank, branch_id, photo_url, password_hash, is_active, created_at, updated_at`

func scanStudent(row *sql.Row) (*models.Student, error) {
	var s models.Student
	var updatedAt sql.NullTime
	err := row.Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.PhoneNumber, &s.BeltRank, &s.BranchID, &s.PhotoURL, &s.PasswordHash, &s.IsActive, &s.CreatedAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("student not found")
		}
		return nil, err
	}
	if updatedAt.Valid {
		s.UpdatedAt = &updatedAt.Time
	}
	return &s, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, email, first_name, last_name, phone_number, belt_rank, branch_id, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, student.ID, student.Email, student.FirstName, student.LastName, student.PhoneNumber, student.BeltRank, student.BranchID, student.PasswordHash, student.IsActive, student.CreatedAt).Scan(&student.CreatedAt)
	return err
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(r.db.QueryRowContext(ctx, query, id))
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE LOWER(email) = LOWER($1)`
	return scanStudent(r.db.QueryRowContext(ctx, query, email))
}

func (r *studentRepository) List(ctx context.Context, limit int, offset int) ([]models.Student, error) {
	query := `
		SELECT id, email, first_name, last_name, phone_number, belt_rank, branch_id, photo_url, is_active, created_at
		FROM students
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.PhoneNumber, &s.BeltRank, &s.BranchID, &s.PhotoURL, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

func (r *studentRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *studentRepository) UpdateProfile(ctx context.Context, id string, req *models.UpdateStudentRequest) error {
	query := `
		UPDATE students
		SET email = COALESCE($1, email),
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			phone_number = COALESCE($4, phone_number),
			belt_rank = COALESCE($5, belt_rank),
			branch_id = COALESCE($6, branch_id),
			is_active = COALESCE($7, is_active),
			updated_at = NOW()
		WHERE id = $8
		RETURNING id
	`

	var outID string
	err := r.db.QueryRowContext(ctx, query, req.Email, req.FirstName, req.LastName, req.PhoneNumber, req.BeltRank, req.BranchID, req.IsActive, id).Scan(&outID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("student not found")
		}
		return err
	}
	return nil
}

func (r *studentRepository) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	query := `UPDATE students SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("student not found")
	}
	return nil
}

func (r *studentRepository) UpdatePhotoURL(ctx context.Context, id string, photoURL string) error {
	query := `UPDATE students SET photo_url = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, photoURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("student not found")
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("student not found")
	}
	return nil
}

func (r *studentRepository) FindPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error) {
	s, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.Principal{
		ID:          s.ID,
		Email:       s.Email,
		FullName:    s.FullName(),
		PhoneNumber: s.PhoneNumber,
		IsActive:    s.IsActive,
	}, nil
}

func (r *studentRepository) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	return r.UpdatePasswordHash(ctx, id, passwordHash)
}
