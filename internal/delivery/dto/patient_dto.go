package dto

import (
	"time"
)

// Request DTOs

type RegisterPatientRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
}

type UpdatePatientRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
}

type UpdatePatientProfileRequest struct {
	FirstName                    string `json:"first_name" validate:"required,max=100"`
	LastName                     string `json:"last_name" validate:"required,max=100"`
	PhoneNumber                  string `json:"phone_number" validate:"omitempty,max=20"`
	DateOfBirth                  string `json:"date_of_birth" validate:"omitempty,dateformat"`
	Gender                       string `json:"gender" validate:"omitempty,oneof=male female other"`
	Address                      string `json:"address" validate:"omitempty,max=500"`
	City                         string `json:"city" validate:"omitempty,max=100"`
	State                        string `json:"state" validate:"omitempty,max=100"`
	ZipCode                      string `json:"zip_code" validate:"omitempty,max=20"`
	InsuranceProvider            string `json:"insurance_provider" validate:"omitempty,max=100"`
	InsurancePolicyNumber        string `json:"insurance_policy_number" validate:"omitempty,max=100"`
	EmergencyContactName         string `json:"emergency_contact_name" validate:"omitempty,max=200"`
	EmergencyContactPhone        string `json:"emergency_contact_phone" validate:"omitempty,max=20"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship" validate:"omitempty,max=50"`
	BloodType                    string `json:"blood_type" validate:"omitempty,max=5"`
	Allergies                    string `json:"allergies" validate:"omitempty,max=2000"`
	MedicalNotes                 string `json:"medical_notes" validate:"omitempty,max=5000"`
}

// Response DTOs

type PatientResponse struct {
	ID                           int        `json:"id"`
	FirstName                    string     `json:"first_name"`
	LastName                     string     `json:"last_name"`
	FullName                     string     `json:"full_name"`
	Email                        string     `json:"email"`
	PhoneNumber                  string     `json:"phone_number,omitempty"`
	DateOfBirth                  *time.Time `json:"date_of_birth,omitempty"`
	Gender                       string     `json:"gender,omitempty"`
	Address                      string     `json:"address,omitempty"`
	City                         string     `json:"city,omitempty"`
	State                        string     `json:"state,omitempty"`
	ZipCode                      string     `json:"zip_code,omitempty"`
	InsuranceProvider            string     `json:"insurance_provider,omitempty"`
	InsurancePolicyNumber        string     `json:"insurance_policy_number,omitempty"`
	EmergencyContactName         string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone        string     `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelationship string     `json:"emergency_contact_relationship,omitempty"`
	BloodType                    string     `json:"blood_type,omitempty"`
	Allergies                    string     `json:"allergies,omitempty"`
	MedicalNotes                 string     `json:"medical_notes,omitempty"`
	IsProfileComplete            bool       `json:"is_profile_complete"`
	CreatedAt                    time.Time  `json:"created_at"`
	UpdatedAt                    time.Time  `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
