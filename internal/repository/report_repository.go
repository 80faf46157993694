package repository

import (
	"context"
	"database/sql"

	"dojo/internal/models"
)

type ReportRepository interface {
	EnrollmentsPerCourse(ctx context.Context, branchID string) ([]models.CourseEnrollmentCount, error)
	RevenueByBranch(ctx context.Context, month string) ([]models.BranchRevenue, error)
	StudentsPerBranch(ctx context.Context) ([]models.BranchStudentCount, error)
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) EnrollmentsPerCourse(ctx context.Context, branchID string) ([]models.CourseEnrollmentCount, error) {
	query := `
		SELECT c.id, c.name, c.discipline, COUNT(e.id) FILTER (WHERE e.status = 'active') AS active_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
	`
	args := []any{}
	if branchID != "" {
		query += ` WHERE c.branch_id = $1`
		args = append(args, branchID)
	}
	query += ` GROUP BY c.id, c.name, c.discipline ORDER BY active_count DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CourseEnrollmentCount
	for rows.Next() {
		var c models.CourseEnrollmentCount
		if err := rows.Scan(&c.CourseID, &c.CourseName, &c.Discipline, &c.ActiveCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *reportRepository) RevenueByBranch(ctx context.Context, month string) ([]models.BranchRevenue, error) {
	query := `
		SELECT b.id, b.name, TO_CHAR(p.paid_at, 'YYYY-MM') AS month, COALESCE(SUM(p.amount), 0) AS total
		FROM payments p
		JOIN students s ON s.id = p.student_id
		JOIN branches b ON b.id = s.branch_id
		WHERE p.status = 'paid'
	`
	args := []any{}
	if month != "" {
		query += ` AND TO_CHAR(p.paid_at, 'YYYY-MM') = $1`
		args = append(args, month)
	}
	query += ` GROUP BY b.id, b.name, month ORDER BY b.name, month`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BranchRevenue
	for rows.Next() {
		var b models.BranchRevenue
		if err := rows.Scan(&b.BranchID, &b.BranchName, &b.Month, &b.Total); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}

func (r *reportRepository) StudentsPerBranch(ctx context.Context) ([]models.BranchStudentCount, error) {
	query := `
		SELECT b.id, b.name,
			COUNT(s.id) FILTER (WHERE s.is_active) AS active,
			COUNT(s.id) AS total
		FROM branches b
		LEFT JOIN students s ON s.branch_id = b.id
		GROUP BY b.id, b.name
		ORDER BY b.name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BranchStudentCount
	for rows.Next() {
		var b models.BranchStudentCount
		if err := rows.Scan(&b.BranchID, &b.BranchName, &b.Active, &b.Total); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}
