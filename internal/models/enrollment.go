package models

import "time"

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusPaused    = "paused"
	EnrollmentStatusCancelled = "cancelled"
)

type Enrollment struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	CourseID  string    `json:"course_id"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateEnrollmentRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid4"`
	CourseID  string `json:"course_id" validate:"required,uuid4"`
	StartDate string `json:"start_date,omitempty"`
}

type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused cancelled"`
}
