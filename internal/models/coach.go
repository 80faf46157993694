package models

import "time"

// Coach keeps its email under contact_email, mirroring the nested
// contact_info block the admin frontend sends.
type Coach struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name" validate:"required"`
	LastName     string     `json:"last_name" validate:"required"`
	ContactEmail string     `json:"contact_email" validate:"required,email"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	Specialty    string     `json:"specialty,omitempty"`
	BranchID     *string    `json:"branch_id,omitempty"`
	PhotoURL     string     `json:"photo_url,omitempty"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (c *Coach) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type CreateCoachRequest struct {
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	ContactEmail string  `json:"contact_email" validate:"required,email"`
	ContactPhone string  `json:"contact_phone,omitempty"`
	Specialty    string  `json:"specialty,omitempty"`
	BranchID     *string `json:"branch_id,omitempty"`
	Password     string  `json:"password" validate:"required,min=8"`
}

type UpdateCoachRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Specialty    *string `json:"specialty,omitempty"`
	BranchID     *string `json:"branch_id,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
