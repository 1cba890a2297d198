package converter

import (
	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                           patient.ID,
		FirstName:                    patient.FirstName,
		LastName:                     patient.LastName,
		FullName:                     patient.FullName(),
		Email:                        patient.Email,
		PhoneNumber:                  patient.PhoneNumber,
		DateOfBirth:                  patient.DateOfBirth,
		Gender:                       patient.Gender,
		Address:                      patient.Address,
		City:                         patient.City,
		State:                        patient.State,
		ZipCode:                      patient.ZipCode,
		InsuranceProvider:            patient.InsuranceProvider,
		InsurancePolicyNumber:        patient.InsurancePolicyNumber,
		EmergencyContactName:         patient.EmergencyContactName,
		EmergencyContactPhone:        patient.EmergencyContactPhone,
		EmergencyContactRelationship: patient.EmergencyContactRelationship,
		BloodType:                    patient.BloodType,
		Allergies:                    patient.Allergies,
		MedicalNotes:                 patient.MedicalNotes,
		IsProfileComplete:            patient.IsProfileComplete,
		CreatedAt:                    patient.CreatedAt,
		UpdatedAt:                    patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		responses[i] = *PatientToResponse(&patient)
	}
	return responses
}
