package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dojo/internal/models"
)

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context, branchID string, limit int, offset int) ([]models.Course, error)
	Count(ctx context.Context, branchID string) (int, error)
	Update(ctx context.Context, id string, req *models.UpdateCourseRequest) error
	Delete(ctx context.Context, id string) error
}

type courseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) CourseRepository {
	return &courseRepository{db: db}
}

const courseColumns = `id, name, discipline, description, branch_id, coach_id, schedule, capacity, monthly_fee, is_active, created_at`

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (id, name, discipline, description, branch_id, coach_id, schedule, capacity, monthly_fee, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, course.ID, course.Name, course.Discipline, course.Description, course.BranchID, course.CoachID, course.Schedule, course.Capacity, course.MonthlyFee, course.IsActive, course.CreatedAt).Scan(&course.CreatedAt)
	return err
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var c models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Discipline, &c.Description, &c.BranchID, &c.CoachID, &c.Schedule, &c.Capacity, &c.MonthlyFee, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("course not found")
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) List(ctx context.Context, branchID string, limit int, offset int) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses`
	args := make([]any, 0, 3)
	argPos := 1
	if branchID != "" {
		query += fmt.Sprintf(" WHERE branch_id = $%d", argPos)
		args = append(args, branchID)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Discipline, &c.Description, &c.BranchID, &c.CoachID, &c.Schedule, &c.Capacity, &c.MonthlyFee, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

func (r *courseRepository) Count(ctx context.Context, branchID string) (int, error) {
	query := `SELECT COUNT(*) FROM courses`
	args := []any{}
	if branchID != "" {
		query += ` WHERE branch_id = $1`
		args = append(args, branchID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *courseRepository) Update(ctx context.Context, id string, req *models.UpdateCourseRequest) error {
	query := `
		UPDATE courses
		SET name = COALESCE($1, name),
			discipline = COALESCE($2, discipline),
			description = COALESCE($3, description),
			coach_id = COALESCE($4, coach_id),
			schedule = COALESCE($5, schedule),
			capacity = COALESCE($6, capacity),
			monthly_fee = COALESCE($7, monthly_fee),
			is_active = COALESCE($8, is_active)
		WHERE id = $9
		RETURNING id
	`

	var outID string
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Discipline, req.Description, req.CoachID, req.Schedule, req.Capacity, req.MonthlyFee, req.IsActive, id).Scan(&outID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("course not found")
		}
		return err
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("course not found")
	}
	return nil
}
