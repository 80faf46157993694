package models

import "time"

type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Discipline  string    `json:"discipline" validate:"required"`
	Description string    `json:"description,omitempty"`
	BranchID    string    `json:"branch_id" validate:"required"`
	CoachID     *string   `json:"coach_id,omitempty"`
	Schedule    string    `json:"schedule,omitempty"`
	Capacity    int       `json:"capacity"`
	MonthlyFee  float64   `json:"monthly_fee"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateCourseRequest struct {
	Name        string  `json:"name" validate:"required"`
	Discipline  string  `json:"discipline" validate:"required"`
	Description string  `json:"description,omitempty"`
	BranchID    string  `json:"branch_id" validate:"required,uuid4"`
	CoachID     *string `json:"coach_id,omitempty" validate:"omitempty,uuid4"`
	Schedule    string  `json:"schedule,omitempty"`
	Capacity    int     `json:"capacity" validate:"gte=0"`
	MonthlyFee  float64 `json:"monthly_fee" validate:"gte=0"`
}

type UpdateCourseRequest struct {
	Name        *string  `json:"name,omitempty"`
	Discipline  *string  `json:"discipline,omitempty"`
	Description *string  `json:"description,omitempty"`
	CoachID     *string  `json:"coach_id,omitempty"`
	Schedule    *string  `json:"schedule,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	MonthlyFee  *float64 `json:"monthly_fee,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
