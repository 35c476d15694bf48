package converter

import (
	"time"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		DateOfBirth:      user.DateOfBirth.Format("2006-01-02"),
		Age:              user.AgeAt(time.Now()),
		Gender:           user.Gender,
		Phone:            user.Phone,
		Address:          user.Address,
		Role:             user.Role.RoleName,
		Roles:            entity.NewActor(user).Roles(),
		AccountStatus:    string(user.AccountStatus),
		PatientProfileID: user.PatientProfileID,
		DoctorProfileID:  user.DoctorProfileID,
		LastLoginAt:      user.LastLoginAt,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
