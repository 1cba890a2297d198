package entity

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// TimeOfDayLayout is the wire and storage format for the appointment time component
const TimeOfDayLayout = "15:04"

// Appointment represents a booked visit between one patient and one doctor.
// The date and time-of-day components are stored separately and combined
// via StartAt to form the effective instant.
type Appointment struct {
	ID                 int               `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID          int               `gorm:"not null;index" json:"patient_id"`
	DoctorID           int               `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate    time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime    string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	DurationInMinutes  int               `gorm:"not null;default:30" json:"duration_in_minutes"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Reason             string            `gorm:"type:text" json:"reason,omitempty"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CancellationReason *string           `gorm:"type:text" json:"cancellation_reason,omitempty"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:RESTRICT" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// StartAt combines the date and time-of-day components into the effective instant, UTC.
// The stored time component is validated on write, so a malformed value collapses to midnight.
func (a *Appointment) StartAt() time.Time {
	tod, err := time.Parse(TimeOfDayLayout, a.AppointmentTime)
	if err != nil {
		tod = time.Time{}
	}
	d := a.AppointmentDate.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
}

// EndAt returns the effective instant plus the appointment duration
func (a *Appointment) EndAt() time.Time {
	return a.StartAt().Add(time.Duration(a.DurationInMinutes) * time.Minute)
}

// IsUpcoming reports whether the appointment starts in the future and is not cancelled
func (a *Appointment) IsUpcoming() bool {
	return a.StartAt().After(time.Now().UTC()) && a.Status != AppointmentStatusCancelled
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// ValidStatus reports whether s is one of the known appointment statuses
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}
