package entity

import (
	"time"
)

// TimeSlot represents one bookable or blocked interval for a doctor.
// Slots do not reference the appointment consuming them; conflicts are
// detected by interval comparison.
type TimeSlot struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    int        `gorm:"not null;index" json:"doctor_id"`
	StartTime   time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time  `gorm:"not null" json:"end_time"`
	IsAvailable bool       `gorm:"not null;default:true" json:"is_available"`
	IsBlocked   bool       `gorm:"not null;default:false" json:"is_blocked"`
	BlockReason *string    `gorm:"type:text" json:"block_reason,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}

// Duration returns the slot length
func (t *TimeSlot) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

// IsUsable reports whether the slot can still be booked at the given instant
func (t *TimeSlot) IsUsable(now time.Time) bool {
	return t.IsAvailable && !t.IsBlocked && t.StartTime.After(now)
}

// Block marks the slot blocked; a blocked slot is never available.
// An empty reason is stored as no reason at all.
func (t *TimeSlot) Block(reason string) {
	t.IsBlocked = true
	t.IsAvailable = false
	t.BlockReason = nil
	if reason != "" {
		t.BlockReason = &reason
	}
}

// Unblock clears the block and makes the slot available again
func (t *TimeSlot) Unblock() {
	t.IsBlocked = false
	t.IsAvailable = true
	t.BlockReason = nil
}
