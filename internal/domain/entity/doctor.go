package entity

import (
	"time"
)

// Doctor represents a practitioner that can be booked for appointments
type Doctor struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName     string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber   string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Specialization string   `gorm:"type:varchar(100);not null;index" json:"specialization"`
	LicenseNumber *string   `gorm:"type:varchar(50);uniqueIndex" json:"license_number,omitempty"`
	IsAvailable   bool      `gorm:"not null;default:true;index" json:"is_available"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	TimeSlots    []TimeSlot    `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"time_slots,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// FullName returns the doctor's display name
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
