package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dojo/internal/models"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error)
	CountActiveByCourse(ctx context.Context, courseID string) (int, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

type enrollmentRepository struct {
	db *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

const enrollmentColumns = `id, student_id, course_id, status, start_date, created_at`

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, student_id, course_id, status, start_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, enrollment.ID, enrollment.StudentID, enrollment.CourseID, enrollment.Status, enrollment.StartDate, enrollment.CreatedAt).Scan(&enrollment.CreatedAt)
	return err
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`

	var e models.Enrollment
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.StartDate, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("enrollment not found")
		}
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, studentID)
}

func (r *enrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE course_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, courseID)
}

func (r *enrollmentRepository) list(ctx context.Context, query string, arg any) ([]models.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.StartDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

func (r *enrollmentRepository) CountActiveByCourse(ctx context.Context, courseID string) (int, error) {
	query := `SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'active'`
	var total int
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *enrollmentRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE enrollments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("enrollment not found")
	}
	return nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("enrollment not found")
	}
	return nil
}
