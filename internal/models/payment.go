package models

import "time"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"

	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

type Payment struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	EnrollmentID *string    `json:"enrollment_id,omitempty"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	Method       string     `json:"method"`
	Status       string     `json:"status"`
	PeriodMonth  string     `json:"period_month,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CreatePaymentRequest struct {
	StudentID    string  `json:"student_id" validate:"required,uuid4"`
	EnrollmentID *string `json:"enrollment_id,omitempty" validate:"omitempty,uuid4"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"required,len=3"`
	Method       string  `json:"method" validate:"required,oneof=cash card transfer"`
	PeriodMonth  string  `json:"period_month,omitempty"`
}
