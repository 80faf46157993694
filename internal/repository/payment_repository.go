package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dojo/internal/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	ListByStudent(ctx context.Context, studentID string, limit int, offset int) ([]models.Payment, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	MarkRefunded(ctx context.Context, id string) error
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, student_id, enrollment_id, amount, currency, method, status, period_month, paid_at, created_at`

func scanPayment(row *sql.Row) (*models.Payment, error) {
	var p models.Payment
	var paidAt sql.NullTime
	err := row.Scan(&p.ID, &p.StudentID, &p.EnrollmentID, &p.Amount, &p.Currency, &p.Method, &p.Status, &p.PeriodMonth, &paidAt, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("payment not found")
		}
		return nil, err
	}
	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, student_id, enrollment_id, amount, currency, method, status, period_month, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, payment.ID, payment.StudentID, payment.EnrollmentID, payment.Amount, payment.Currency, payment.Method, payment.Status, payment.PeriodMonth, payment.CreatedAt).Scan(&payment.CreatedAt)
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID string, limit int, offset int) ([]models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE student_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, studentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var paidAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.StudentID, &p.EnrollmentID, &p.Amount, &p.Currency, &p.Method, &p.Status, &p.PeriodMonth, &paidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		if paidAt.Valid {
			p.PaidAt = &paidAt.Time
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	query := `UPDATE payments SET status = 'paid', paid_at = $1 WHERE id = $2 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, paidAt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("payment not found")
	}
	return nil
}

func (r *paymentRepository) MarkRefunded(ctx context.Context, id string) error {
	query := `UPDATE payments SET status = 'refunded' WHERE id = $1 AND status = 'paid'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("payment not found")
	}
	return nil
}
