package converter

import (
	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		AppointmentDate:    appointment.AppointmentDate.UTC().Format("2006-01-02"),
		AppointmentTime:    appointment.AppointmentTime,
		StartAt:            appointment.StartAt(),
		EndAt:              appointment.EndAt(),
		DurationInMinutes:  appointment.DurationInMinutes,
		Status:             string(appointment.Status),
		Reason:             appointment.Reason,
		Notes:              appointment.Notes,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
		CancelledAt:        appointment.CancelledAt,
		CancellationReason: appointment.CancellationReason,
	}

	// Include related records when preloaded
	if appointment.Patient.ID != 0 {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Doctor.ID != 0 {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}
