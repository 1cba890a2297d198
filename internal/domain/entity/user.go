package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication record. Patient accounts
// carry a link to the patient row created at registration.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID      int        `gorm:"not null;index" json:"role_id"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:text;not null" json:"-"`
	FirstName   string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string     `gorm:"type:varchar(100);not null" json:"last_name"`
	PhoneNumber string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	PatientID   *int       `gorm:"index" json:"patient_id,omitempty"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role    Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns the account holder's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
