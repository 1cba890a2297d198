package converter

import (
	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"
)

// TimeSlotToResponse converts a TimeSlot entity to TimeSlotResponse DTO
func TimeSlotToResponse(slot *entity.TimeSlot) *dto.TimeSlotResponse {
	if slot == nil {
		return nil
	}

	response := &dto.TimeSlotResponse{
		ID:          slot.ID,
		DoctorID:    slot.DoctorID,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		IsAvailable: slot.IsAvailable,
		IsBlocked:   slot.IsBlocked,
		BlockReason: slot.BlockReason,
		CreatedAt:   slot.CreatedAt,
		UpdatedAt:   slot.UpdatedAt,
	}

	if slot.Doctor.ID != 0 {
		response.Doctor = DoctorToResponse(&slot.Doctor)
	}

	return response
}

// TimeSlotsToResponses converts a slice of TimeSlot entities to DTOs
func TimeSlotsToResponses(slots []entity.TimeSlot) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = *TimeSlotToResponse(&slot)
	}
	return responses
}
