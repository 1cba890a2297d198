package dto

import (
	"time"
)

// Request DTOs

type CreateTimeSlotRequest struct {
	DoctorID  int       `json:"doctor_id" validate:"required,min=1"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type BulkCreateTimeSlotsRequest struct {
	DoctorID              int    `json:"doctor_id" validate:"required,min=1"`
	Date                  string `json:"date" validate:"required,dateformat"`
	StartTime             string `json:"start_time" validate:"required,timeofday"`
	EndTime               string `json:"end_time" validate:"required,timeofday"`
	SlotDurationInMinutes int    `json:"slot_duration_in_minutes" validate:"required,min=1,max=480"`
}

type UpdateTimeSlotRequest struct {
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	IsAvailable bool      `json:"is_available"`
	IsBlocked   bool      `json:"is_blocked"`
	BlockReason string    `json:"block_reason" validate:"omitempty,max=500"`
}

type BlockTimeSlotRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Response DTOs

type TimeSlotResponse struct {
	ID          int             `json:"id"`
	DoctorID    int             `json:"doctor_id"`
	Doctor      *DoctorResponse `json:"doctor,omitempty"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
	IsAvailable bool            `json:"is_available"`
	IsBlocked   bool            `json:"is_blocked"`
	BlockReason *string         `json:"block_reason,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type TimeSlotListResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
	Total     int                `json:"total"`
}

type DeletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}

// AvailableIntervalResponse is one bookable window. TimeSlotID is set when
// the window comes from a persisted slot and omitted for generated ones.
type AvailableIntervalResponse struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TimeSlotID *int      `json:"time_slot_id,omitempty"`
}

type DoctorAvailabilityResponse struct {
	DoctorID  int                         `json:"doctor_id"`
	Date      string                      `json:"date"`
	Source    string                      `json:"source"` // "slots" or "generated"
	Intervals []AvailableIntervalResponse `json:"intervals"`
	Total     int                         `json:"total"`
}
