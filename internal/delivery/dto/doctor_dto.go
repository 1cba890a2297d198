package dto

import (
	"time"
)

// Request DTOs

type RegisterDoctorRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=20"`
	Specialization string `json:"specialization" validate:"required,max=100"`
	LicenseNumber  string `json:"license_number" validate:"omitempty,max=50"`
}

type UpdateDoctorRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=20"`
	Specialization string `json:"specialization" validate:"required,max=100"`
	LicenseNumber  string `json:"license_number" validate:"omitempty,max=50"`
	IsAvailable    bool   `json:"is_available"`
}

type SetDoctorAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Specialization string    `json:"specialization"`
	LicenseNumber  *string   `json:"license_number,omitempty"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
