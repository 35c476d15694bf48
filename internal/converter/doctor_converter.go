package converter

import (
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	availability := doctor.Availability.Data()
	if availability == nil {
		availability = entity.DefaultAvailabilitySchedule()
	}

	return &dto.DoctorResponse{
		ID:                   doctor.ID,
		UserID:               doctor.UserID,
		DoctorCode:           doctor.DoctorCode,
		FullName:             doctor.User.FullName,
		Email:                doctor.User.Email,
		MedicalLicenseNumber: doctor.MedicalLicenseNumber,
		Specialization:       string(doctor.Specialization),
		ApprovalStatus:       string(doctor.ApprovalStatus),
		ApprovedBy:           doctor.ApprovedBy,
		ApprovalDate:         doctor.ApprovalDate,
		RejectionReason:      doctor.RejectionReason,
		HospitalAffiliation:  doctor.HospitalAffiliation,
		Department:           doctor.Department,
		YearsOfExperience:    doctor.YearsOfExperience,
		ConsultationFee:      doctor.ConsultationFee,
		AverageRating:        doctor.AverageRating(),
		TotalReviews:         doctor.TotalReviews,
		Availability:         availability,
		AvailableDays:        doctor.AvailableDays(),
		Qualifications:       nonNil(doctor.Qualifications),
		Bio:                  doctor.Bio,
		LanguagesSpoken:      nonNil(doctor.LanguagesSpoken),
		CreatedAt:            doctor.CreatedAt,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

func DoctorToSummary(doctor *entity.Doctor) *dto.DoctorSummary {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorSummary{
		ID:                  doctor.ID,
		DoctorCode:          doctor.DoctorCode,
		FullName:            doctor.User.FullName,
		Specialization:      string(doctor.Specialization),
		HospitalAffiliation: doctor.HospitalAffiliation,
	}
}
