package converter

import (
	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		FirstName:      doctor.FirstName,
		LastName:       doctor.LastName,
		FullName:       doctor.FullName(),
		Email:          doctor.Email,
		PhoneNumber:    doctor.PhoneNumber,
		Specialization: doctor.Specialization,
		LicenseNumber:  doctor.LicenseNumber,
		IsAvailable:    doctor.IsAvailable,
		CreatedAt:      doctor.CreatedAt,
		UpdatedAt:      doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = *DoctorToResponse(&doctor)
	}
	return responses
}
