package entity

import (
	"time"
)

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Patient represents a person that books appointments.
// The extended profile fields are optional; IsProfileComplete is derived
// from the presence of name, phone number and date of birth.
type Patient struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender,omitempty"`

	// Address
	Address string `gorm:"type:text" json:"address,omitempty"`
	City    string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State   string `gorm:"type:varchar(100)" json:"state,omitempty"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code,omitempty"`

	// Insurance
	InsuranceProvider     string `gorm:"type:varchar(100)" json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string `gorm:"type:varchar(100)" json:"insurance_policy_number,omitempty"`

	// Emergency contact
	EmergencyContactName         string `gorm:"type:varchar(200)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone        string `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelationship string `gorm:"type:varchar(50)" json:"emergency_contact_relationship,omitempty"`

	// Medical information
	BloodType    string `gorm:"type:varchar(5)" json:"blood_type,omitempty"`
	Allergies    string `gorm:"type:text" json:"allergies,omitempty"`
	MedicalNotes string `gorm:"type:text" json:"medical_notes,omitempty"`

	IsProfileComplete bool      `gorm:"not null;default:false" json:"is_profile_complete"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName returns the patient's display name
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age returns the patient's age in full years, or nil when the date of birth is unknown
func (p *Patient) Age() *int {
	if p.DateOfBirth == nil {
		return nil
	}
	now := time.Now().UTC()
	age := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	return &age
}

// RefreshProfileComplete recomputes the derived IsProfileComplete flag.
// A profile counts as complete when name, phone number and date of birth are all present.
func (p *Patient) RefreshProfileComplete() {
	p.IsProfileComplete = p.FirstName != "" &&
		p.LastName != "" &&
		p.PhoneNumber != "" &&
		p.DateOfBirth != nil
}
