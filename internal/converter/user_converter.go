package converter

import (
	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		switch user.RoleID {
		case entity.RoleIDAdmin:
			role = entity.RoleAdmin
		case entity.RoleIDDoctor:
			role = entity.RoleDoctor
		case entity.RoleIDPatient:
			role = entity.RolePatient
		}
	}

	return &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Role:        role,
		PatientID:   user.PatientID,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
