package dto

import (
	"time"
)

// Request DTOs

type ScheduleAppointmentRequest struct {
	PatientID         int    `json:"patient_id" validate:"required,min=1"`
	DoctorID          int    `json:"doctor_id" validate:"required,min=1"`
	AppointmentDate   string `json:"appointment_date" validate:"required,dateformat"`
	AppointmentTime   string `json:"appointment_time" validate:"required,timeofday"`
	DurationInMinutes int    `json:"duration_in_minutes" validate:"required,min=1,max=480"`
	Reason            string `json:"reason" validate:"omitempty,max=500"`
	Notes             string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate   string `json:"appointment_date" validate:"required,dateformat"`
	AppointmentTime   string `json:"appointment_time" validate:"required,timeofday"`
	DurationInMinutes int    `json:"duration_in_minutes" validate:"required,min=1,max=480"`
	Status            string `json:"status" validate:"required"`
	Reason            string `json:"reason" validate:"omitempty,max=500"`
	Notes             string `json:"notes" validate:"omitempty,max=2000"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 int              `json:"id"`
	PatientID          int              `json:"patient_id"`
	DoctorID           int              `json:"doctor_id"`
	Patient            *PatientResponse `json:"patient,omitempty"`
	Doctor             *DoctorResponse  `json:"doctor,omitempty"`
	AppointmentDate    string           `json:"appointment_date"`
	AppointmentTime    string           `json:"appointment_time"`
	StartAt            time.Time        `json:"start_at"`
	EndAt              time.Time        `json:"end_at"`
	DurationInMinutes  int              `json:"duration_in_minutes"`
	Status             string           `json:"status"`
	Reason             string           `json:"reason,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	CancelledAt        *time.Time       `json:"cancelled_at,omitempty"`
	CancellationReason *string          `json:"cancellation_reason,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
