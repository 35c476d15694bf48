package converter

import (
	"time"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientToResponse converts a Patient with its preloaded User to PatientProfileResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientProfileResponse {
	if patient == nil {
		return nil
	}

	resp := &dto.PatientProfileResponse{
		ID:                    patient.ID,
		UserID:                patient.UserID,
		PatientCode:           patient.PatientCode,
		Weight:                patient.Weight,
		Height:                patient.Height,
		BMI:                   patient.BMI(),
		BloodType:             string(patient.BloodType),
		Allergies:             nonNil(patient.Allergies),
		ChronicConditions:     nonNil(patient.ChronicConditions),
		CareModeEnabled:       patient.CareModeEnabled,
		PreferredUnitSystem:   patient.PreferredUnitSystem,
		PrimaryDoctorID:       patient.PrimaryDoctorID,
		SmokingStatus:         patient.SmokingStatus,
		AlcoholConsumption:    patient.AlcoholConsumption,
		ExerciseFrequency:     patient.ExerciseFrequency,
		MedicalHistorySummary: patient.MedicalHistorySummary,
		DataSharingConsent:    patient.DataSharingConsent,
		CreatedAt:             patient.CreatedAt,
		UpdatedAt:             patient.UpdatedAt,
	}

	if patient.User.ID != uuid.Nil {
		resp.FullName = patient.User.FullName
		resp.Email = patient.User.Email
		resp.Gender = patient.User.Gender
		resp.Age = patient.User.AgeAt(time.Now())
	}

	return resp
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientProfileResponse {
	responses := make([]dto.PatientProfileResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

// PatientToSummary is the reduced view a doctor sees in relation listings.
func PatientToSummary(patient *entity.Patient) *dto.PatientSummary {
	if patient == nil {
		return nil
	}

	summary := &dto.PatientSummary{
		ID:          patient.ID,
		PatientCode: patient.PatientCode,
		FullName:    patient.User.FullName,
		Email:       patient.User.Email,
		Gender:      patient.User.Gender,
	}
	if !patient.User.DateOfBirth.IsZero() {
		summary.Age = patient.User.AgeAt(time.Now())
	}
	return summary
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func EmergencyContactToResponse(contact *entity.EmergencyContact) *dto.EmergencyContactResponse {
	if contact == nil {
		return nil
	}

	return &dto.EmergencyContactResponse{
		ID:                     contact.ID,
		PatientID:              contact.PatientID,
		FullName:               contact.FullName,
		Relationship:           string(contact.Relationship),
		Phone:                  contact.Phone,
		Email:                  contact.Email,
		Address:                contact.Address.Data(),
		IsPrimary:              contact.IsPrimary,
		NotificationsEnabled:   contact.NotificationsEnabled,
		PreferredContactMethod: string(contact.PreferredContactMethod),
		CanViewMedicalInfo:     contact.CanViewMedicalInfo,
		CanMakeDecisions:       contact.CanMakeDecisions,
		LastContacted:          contact.LastContacted,
		Notes:                  contact.Notes,
		CreatedAt:              contact.CreatedAt,
		UpdatedAt:              contact.UpdatedAt,
	}
}

func EmergencyContactsToResponses(contacts []entity.EmergencyContact) []dto.EmergencyContactResponse {
	responses := make([]dto.EmergencyContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = *EmergencyContactToResponse(&contacts[i])
	}
	return responses
}
